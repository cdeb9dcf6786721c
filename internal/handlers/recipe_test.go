package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
	"github.com/stretchr/testify/assert"
)

var testAuthor = &models.UserDB{ID: 1, Login: "alice"}

// newRecipeRequest builds a request carrying the {id} route param and, when
// user is set, an authenticated session.
func newRecipeRequest(method, target, id string, body interface{}, user *models.UserDB) *http.Request {
	var bodyBytes []byte
	switch v := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(v)
	default:
		bodyBytes, _ = json.Marshal(v)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(bodyBytes))
	ctx := req.Context()
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	if user != nil {
		ctx = middlewares.WithUser(ctx, user, "tok")
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestCreateRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeCreator(ctrl)
	body := RecipeRequest{Title: "Cake", Food: "Dessert", Text: "Bake it."}
	fields := models.RecipeFields{Title: "Cake", Category: "Dessert", Body: "Bake it."}

	tests := []struct {
		name         string
		body         interface{}
		user         *models.UserDB
		mockSetup    func()
		expectedCode int
		expectedErr  string
	}{
		{
			name: "success",
			body: body,
			user: testAuthor,
			mockSetup: func() {
				mockSvc.EXPECT().Create(gomock.Any(), "alice", fields).
					Return(&models.RecipeDB{ID: 3, Title: "Cake", Category: "Dessert", Body: "Bake it.", OwnerLogin: "alice"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "anonymous",
			body:         body,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  msgLoginRequired,
		},
		{
			name:         "invalid JSON",
			body:         "{",
			user:         testAuthor,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  msgInvalidBody,
		},
		{
			name: "missing title",
			body: RecipeRequest{Food: "Dessert", Text: "x"},
			user: testAuthor,
			mockSetup: func() {
				mockSvc.EXPECT().Create(gomock.Any(), "alice", gomock.Any()).
					Return(nil, &services.ValidationError{Field: "title", Message: "is required"})
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "title: is required",
		},
		{
			name: "storage failure",
			body: body,
			user: testAuthor,
			mockSetup: func() {
				mockSvc.EXPECT().Create(gomock.Any(), "alice", fields).
					Return(nil, errors.Join(services.ErrPersistence, errors.New("disk full")))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  msgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewCreateRecipeHandler(mockSvc).ServeHTTP(w, newRecipeRequest(http.MethodPost, "/user_recipe/new_recipe", "", tt.body, tt.user))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeError(t, w))
				return
			}
			var got models.RecipeDB
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, "alice", got.OwnerLogin)
			assert.Equal(t, int64(3), got.ID)
		})
	}
}

func TestRecipeFormHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NewRecipeFormHandler().ServeHTTP(w, newRecipeRequest(http.MethodGet, "/user_recipe/new_recipe", "", nil, testAuthor))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"","food":"","text":""}`, w.Body.String())

	w = httptest.NewRecorder()
	NewRecipeFormHandler().ServeHTTP(w, newRecipeRequest(http.MethodGet, "/user_recipe/new_recipe", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListRecipesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeLister(ctrl)

	t.Run("success", func(t *testing.T) {
		recipes := []models.RecipeDB{{ID: 2, Title: "B"}, {ID: 1, Title: "A"}}
		mockSvc.EXPECT().ListAll(gomock.Any()).Return(recipes, nil)

		w := httptest.NewRecorder()
		NewListRecipesHandler(mockSvc).ServeHTTP(w, newRecipeRequest(http.MethodGet, "/all_posts", "", nil, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got []models.RecipeDB
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, recipes, got)
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		NewListRecipesHandler(mockSvc).ServeHTTP(w, newRecipeRequest(http.MethodGet, "/all_posts", "", nil, nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeGetter(ctrl)

	tests := []struct {
		name         string
		id           string
		mockSetup    func()
		expectedCode int
	}{
		{
			name: "found",
			id:   "4",
			mockSetup: func() {
				mockSvc.EXPECT().Get(gomock.Any(), int64(4)).Return(&models.RecipeDB{ID: 4}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not found",
			id:   "5",
			mockSetup: func() {
				mockSvc.EXPECT().Get(gomock.Any(), int64(5)).Return(nil, services.ErrRecipeNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "bad id",
			id:           "abc",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "negative id",
			id:           "-1",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewGetRecipeHandler(mockSvc).ServeHTTP(w, newRecipeRequest(http.MethodGet, "/all_posts/"+tt.id, tt.id, nil, nil))

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestEditRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeEditor(ctrl)

	tests := []struct {
		name         string
		user         *models.UserDB
		mockSetup    func()
		expectedCode int
	}{
		{
			name: "author",
			user: testAuthor,
			mockSetup: func() {
				mockSvc.EXPECT().GetForEdit(gomock.Any(), int64(1), "alice").Return(&models.RecipeDB{ID: 1, OwnerLogin: "alice"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "someone else",
			user: &models.UserDB{ID: 2, Login: "bob"},
			mockSetup: func() {
				mockSvc.EXPECT().GetForEdit(gomock.Any(), int64(1), "bob").Return(nil, services.ErrForbidden)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "anonymous",
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewEditRecipeHandler(mockSvc).ServeHTTP(w, newRecipeRequest(http.MethodGet, "/user_recipe/1/update", "1", nil, tt.user))

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestUpdateRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeUpdater(ctrl)
	body := RecipeRequest{Title: "New", Food: "Soup", Text: "Boil."}
	fields := models.RecipeFields{Title: "New", Category: "Soup", Body: "Boil."}

	tests := []struct {
		name         string
		id           string
		body         interface{}
		user         *models.UserDB
		mockSetup    func()
		expectedCode int
		expectedErr  string
	}{
		{
			name: "author updates",
			id:   "1",
			body: body,
			user: testAuthor,
			mockSetup: func() {
				mockSvc.EXPECT().Update(gomock.Any(), int64(1), "alice", fields).
					Return(&models.RecipeDB{ID: 1, Title: "New", Category: "Soup", Body: "Boil.", OwnerLogin: "alice"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "non-author",
			id:   "1",
			body: body,
			user: &models.UserDB{ID: 2, Login: "bob"},
			mockSetup: func() {
				mockSvc.EXPECT().Update(gomock.Any(), int64(1), "bob", fields).Return(nil, services.ErrForbidden)
			},
			expectedCode: http.StatusForbidden,
			expectedErr:  msgNotRecipeAuthor,
		},
		{
			name: "missing",
			id:   "7",
			body: body,
			user: testAuthor,
			mockSetup: func() {
				mockSvc.EXPECT().Update(gomock.Any(), int64(7), "alice", fields).Return(nil, services.ErrRecipeNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedErr:  msgRecipeNotFound,
		},
		{
			name:         "invalid JSON",
			id:           "1",
			body:         "nope",
			user:         testAuthor,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  msgInvalidBody,
		},
		{
			name:         "anonymous",
			id:           "1",
			body:         body,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  msgLoginRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewUpdateRecipeHandler(mockSvc).ServeHTTP(w, newRecipeRequest(http.MethodPost, "/user_recipe/"+tt.id+"/update", tt.id, tt.body, tt.user))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeError(t, w))
			}
		})
	}
}

func TestDeleteRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeDeleter(ctrl)

	tests := []struct {
		name         string
		id           string
		user         *models.UserDB
		mockSetup    func()
		expectedCode int
	}{
		{
			name: "author deletes",
			id:   "1",
			user: testAuthor,
			mockSetup: func() {
				mockSvc.EXPECT().Delete(gomock.Any(), int64(1), "alice").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "non-author",
			id:   "1",
			user: &models.UserDB{ID: 2, Login: "bob"},
			mockSetup: func() {
				mockSvc.EXPECT().Delete(gomock.Any(), int64(1), "bob").Return(services.ErrForbidden)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "missing",
			id:   "8",
			user: testAuthor,
			mockSetup: func() {
				mockSvc.EXPECT().Delete(gomock.Any(), int64(8), "alice").Return(services.ErrRecipeNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "bad id",
			id:           "x",
			user:         testAuthor,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "anonymous",
			id:           "1",
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewDeleteRecipeHandler(mockSvc).ServeHTTP(w, newRecipeRequest(http.MethodPost, "/user_recipe/"+tt.id+"/delete", tt.id, nil, tt.user))

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
