package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageHandlers(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantAbout bool
	}{
		{name: "home", handler: NewHomeHandler("1.2.3")},
		{name: "about", handler: NewAboutHandler("1.2.3"), wantAbout: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp InfoResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "1.2.3", resp.Version)
			assert.Equal(t, tt.wantAbout, resp.About != "")
		})
	}
}
