package services

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Column sizes of the users and recipes tables.
const (
	maxLoginLen       = 20
	maxDisplayNameLen = 100
	maxEmailLen       = 100
	maxTitleLen       = 200
	maxCategoryLen    = 200
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

func required(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return &ValidationError{Field: field, Message: "is too long"}
	}
	return nil
}

func validateEmail(email string) error {
	if err := required("email", email, maxEmailLen); err != nil {
		return err
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "is not a valid address"}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
