package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=recipe.go -destination=recipe_mock.go -package=services

// RecipeReader defines read operations over recipes.
type RecipeReader interface {
	GetByID(ctx context.Context, id int64) (*models.RecipeDB, error)
	List(ctx context.Context) ([]models.RecipeDB, error)
	ListByOwner(ctx context.Context, ownerLogin string) ([]models.RecipeDB, error)
	SearchByTitle(ctx context.Context, term string) ([]models.RecipeDB, error)
}

// RecipeWriter defines write operations over recipes.
type RecipeWriter interface {
	Save(ctx context.Context, ownerLogin string, fields models.RecipeFields) (*models.RecipeDB, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.RecipeDB, error)
	Update(ctx context.Context, id int64, fields models.RecipeFields) (*models.RecipeDB, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher publishes committed recipe changes.
type EventPublisher interface {
	Publish(ctx context.Context, event models.RecipeEvent) error
}

// RecipeService implements recipe CRUD with author-only mutations, and title search.
type RecipeService struct {
	reader RecipeReader
	writer RecipeWriter
	tx     Transactor
	events EventPublisher
}

// NewRecipeService creates a new RecipeService. events may be nil.
func NewRecipeService(reader RecipeReader, writer RecipeWriter, tx Transactor, events EventPublisher) *RecipeService {
	return &RecipeService{
		reader: reader,
		writer: writer,
		tx:     tx,
		events: events,
	}
}

func validateRecipe(fields models.RecipeFields) error {
	return firstError(
		required("title", fields.Title, maxTitleLen),
		required("food", fields.Category, maxCategoryLen),
		required("text", fields.Body, 0),
	)
}

// Create stores a new recipe owned by ownerLogin, the authenticated caller.
func (s *RecipeService) Create(ctx context.Context, ownerLogin string, fields models.RecipeFields) (*models.RecipeDB, error) {
	if ownerLogin == "" {
		return nil, ErrUnauthenticated
	}
	if err := validateRecipe(fields); err != nil {
		return nil, err
	}

	recipe, err := s.writer.Save(ctx, ownerLogin, fields)
	if err != nil {
		logger.Log.Errorw("failed to save recipe", "owner", ownerLogin, "error", err)
		return nil, persistenceError(err)
	}

	s.publish(ctx, models.RecipeCreated, recipe)
	return recipe, nil
}

// Get returns a recipe by id.
func (s *RecipeService) Get(ctx context.Context, id int64) (*models.RecipeDB, error) {
	recipe, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "id", id, "error", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// GetForEdit returns a recipe only to its author.
func (s *RecipeService) GetForEdit(ctx context.Context, id int64, callerLogin string) (*models.RecipeDB, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.OwnerLogin != callerLogin {
		return nil, ErrForbidden
	}
	return recipe, nil
}

// ListAll returns every recipe, newest first.
func (s *RecipeService) ListAll(ctx context.Context) ([]models.RecipeDB, error) {
	recipes, err := s.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "error", err)
		return nil, err
	}
	return recipes, nil
}

// ListByOwner returns the recipes of one author.
func (s *RecipeService) ListByOwner(ctx context.Context, ownerLogin string) ([]models.RecipeDB, error) {
	recipes, err := s.reader.ListByOwner(ctx, ownerLogin)
	if err != nil {
		logger.Log.Errorw("failed to list recipes of owner", "owner", ownerLogin, "error", err)
		return nil, err
	}
	return recipes, nil
}

// Search returns recipes whose title contains query, case-insensitively, ordered by title.
func (s *RecipeService) Search(ctx context.Context, query string) ([]models.RecipeDB, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return nil, &ValidationError{Field: "query", Message: "is required"}
	}

	recipes, err := s.reader.SearchByTitle(ctx, term)
	if err != nil {
		logger.Log.Errorw("failed to search recipes", "query", term, "error", err)
		return nil, err
	}
	return recipes, nil
}

// Update replaces title, category and body of a recipe owned by callerLogin.
// Existence and ownership are checked before the fields, so a non-author
// always gets ErrForbidden.
func (s *RecipeService) Update(ctx context.Context, id int64, callerLogin string, fields models.RecipeFields) (*models.RecipeDB, error) {
	var updated *models.RecipeDB
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.lockOwned(ctx, id, callerLogin); err != nil {
			return err
		}
		if err := validateRecipe(fields); err != nil {
			return err
		}

		recipe, err := s.writer.Update(ctx, id, fields)
		if err != nil {
			return persistenceError(err)
		}
		if recipe == nil {
			return ErrRecipeNotFound
		}
		updated = recipe
		return nil
	})
	if err != nil {
		return nil, s.classify("update", id, callerLogin, err)
	}

	s.publish(ctx, models.RecipeUpdated, updated)
	return updated, nil
}

// Delete removes a recipe owned by callerLogin.
func (s *RecipeService) Delete(ctx context.Context, id int64, callerLogin string) error {
	var deleted *models.RecipeDB
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		recipe, err := s.lockOwned(ctx, id, callerLogin)
		if err != nil {
			return err
		}

		ok, err := s.writer.Delete(ctx, id)
		if err != nil {
			return persistenceError(err)
		}
		if !ok {
			return ErrRecipeNotFound
		}
		deleted = recipe
		return nil
	})
	if err != nil {
		return s.classify("delete", id, callerLogin, err)
	}

	s.publish(ctx, models.RecipeDeleted, deleted)
	return nil
}

// lockOwned locks the recipe row and checks that callerLogin is its author.
func (s *RecipeService) lockOwned(ctx context.Context, id int64, callerLogin string) (*models.RecipeDB, error) {
	recipe, err := s.writer.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, persistenceError(err)
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	if recipe.OwnerLogin != callerLogin {
		return nil, ErrForbidden
	}
	return recipe, nil
}

// classify logs a failed mutation and makes sure untyped failures
// (begin/commit errors) surface as ErrPersistence.
func (s *RecipeService) classify(op string, id int64, callerLogin string, err error) error {
	switch {
	case errors.Is(err, ErrRecipeNotFound), errors.Is(err, ErrValidation):
		return err
	case errors.Is(err, ErrForbidden):
		logger.Log.Warnw("recipe change denied", "op", op, "id", id, "caller", callerLogin)
		return err
	case errors.Is(err, ErrPersistence):
		logger.Log.Errorw("failed to change recipe", "op", op, "id", id, "error", err)
		return err
	default:
		logger.Log.Errorw("failed to change recipe", "op", op, "id", id, "error", err)
		return persistenceError(err)
	}
}

// publish emits a recipe event. Failures are logged and never fail the request.
func (s *RecipeService) publish(ctx context.Context, eventType string, recipe *models.RecipeDB) {
	if s.events == nil {
		return
	}

	event := models.RecipeEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		RecipeID:   recipe.ID,
		OwnerLogin: recipe.OwnerLogin,
		Title:      recipe.Title,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		logger.Log.Errorw("failed to publish recipe event", "event_id", event.EventID, "type", eventType, "error", err)
	}
}
