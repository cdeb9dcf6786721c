package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sbilibin2017/recipe-share/internal/handlers"
	"github.com/sbilibin2017/recipe-share/internal/jwt"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/repositories"
	"github.com/sbilibin2017/recipe-share/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memUsers struct {
	mu   sync.Mutex
	rows []models.UserDB
}

func (m *memUsers) find(match func(u *models.UserDB) bool) *models.UserDB {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if match(&m.rows[i]) {
			u := m.rows[i]
			return &u
		}
	}
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*models.UserDB, error) {
	return m.find(func(u *models.UserDB) bool { return u.ID == id }), nil
}

func (m *memUsers) GetByLogin(_ context.Context, login string) (*models.UserDB, error) {
	return m.find(func(u *models.UserDB) bool { return u.Login == login }), nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.UserDB, error) {
	return m.find(func(u *models.UserDB) bool { return u.Email == email }), nil
}

func (m *memUsers) List(_ context.Context) ([]models.UserDB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.UserDB(nil), m.rows...), nil
}

func (m *memUsers) Save(_ context.Context, login, displayName, email, passwordHash string) (*models.UserDB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Login == login {
			return nil, repositories.ErrDuplicateLogin
		}
		if u.Email == email {
			return nil, repositories.ErrDuplicateEmail
		}
	}
	u := models.UserDB{
		ID:           int64(len(m.rows) + 1),
		Login:        login,
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.rows = append(m.rows, u)
	return &u, nil
}

type memRecipes struct {
	mu   sync.Mutex
	next int64
	rows map[int64]models.RecipeDB
}

func newMemRecipes() *memRecipes {
	return &memRecipes{rows: make(map[int64]models.RecipeDB)}
}

func (m *memRecipes) GetByID(_ context.Context, id int64) (*models.RecipeDB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memRecipes) GetByIDForUpdate(ctx context.Context, id int64) (*models.RecipeDB, error) {
	return m.GetByID(ctx, id)
}

func (m *memRecipes) filter(keep func(r models.RecipeDB) bool) []models.RecipeDB {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.RecipeDB{}
	for _, r := range m.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *memRecipes) List(_ context.Context) ([]models.RecipeDB, error) {
	return m.filter(func(models.RecipeDB) bool { return true }), nil
}

func (m *memRecipes) ListByOwner(_ context.Context, ownerLogin string) ([]models.RecipeDB, error) {
	return m.filter(func(r models.RecipeDB) bool { return r.OwnerLogin == ownerLogin }), nil
}

func (m *memRecipes) SearchByTitle(_ context.Context, term string) ([]models.RecipeDB, error) {
	term = strings.ToLower(term)
	out := m.filter(func(r models.RecipeDB) bool { return strings.Contains(strings.ToLower(r.Title), term) })
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memRecipes) Save(_ context.Context, ownerLogin string, fields models.RecipeFields) (*models.RecipeDB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	r := models.RecipeDB{
		ID:         m.next,
		Title:      fields.Title,
		Category:   fields.Category,
		Body:       fields.Body,
		OwnerLogin: ownerLogin,
		CreatedAt:  time.Now(),
	}
	m.rows[r.ID] = r
	return &r, nil
}

func (m *memRecipes) Update(_ context.Context, id int64, fields models.RecipeFields) (*models.RecipeDB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	r.Title, r.Category, r.Body = fields.Title, fields.Category, fields.Body
	m.rows[id] = r
	return &r, nil
}

func (m *memRecipes) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRevocations struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (m *memRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl > 0 {
		m.ids[tokenID] = true
	}
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ids[tokenID], nil
}

type appClient struct {
	t      *testing.T
	base   string
	http   *http.Client
	bearer string
}

func newAppClient(t *testing.T, base string) *appClient {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &appClient{t: t, base: base, http: &http.Client{Jar: jar}}
}

func (c *appClient) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func newTestServer(t *testing.T) *httptest.Server {
	tokens := jwt.New(jwt.WithSecretKey("test-secret"), jwt.WithExpiration(time.Hour))
	recipes := newMemRecipes()

	users := &memUsers{}
	auth := services.NewAuthService(users, users, tokens, &memRevocations{ids: make(map[string]bool)})

	srv := httptest.NewServer(handlers.NewRouter(handlers.RouterConfig{
		Auth:    auth,
		Recipes: services.NewRecipeService(recipes, recipes, inlineTx{}, nil),
		Tokener: tokens,
		Log:     zap.NewNop().Sugar(),
		Version: "test",
	}))
	t.Cleanup(srv.Close)
	return srv
}

func register(c *appClient, login, email string) int {
	return c.do(http.MethodPost, "/user/user_reg", handlers.RegisterRequest{
		Name:            strings.ToUpper(login[:1]) + login[1:],
		Login:           login,
		Email:           email,
		Password:        login + "-pw",
		PasswordConfirm: login + "-pw",
	}, nil)
}

func login(c *appClient, name string) handlers.LoginResponse {
	var resp handlers.LoginResponse
	require.Equal(c.t, http.StatusOK, c.do(http.MethodPost, "/user/login", handlers.LoginRequest{Login: name, Password: name + "-pw"}, &resp))
	return resp
}

func TestRecipeSharingFlow(t *testing.T) {
	srv := newTestServer(t)
	alice := newAppClient(t, srv.URL)
	bob := newAppClient(t, srv.URL)

	// A registers, logs in and creates R.
	require.Equal(t, http.StatusCreated, register(alice, "alice", "alice@example.com"))
	aliceSession := login(alice, "alice")

	var r models.RecipeDB
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/user_recipe/new_recipe",
		handlers.RecipeRequest{Title: "Chocolate Cake", Food: "Dessert", Text: "Mix and bake."}, &r))
	assert.Equal(t, "alice", r.OwnerLogin)
	recipePath := fmt.Sprintf("/user_recipe/%d", r.ID)

	var account handlers.AccountResponse
	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/account", nil, &account))
	require.Len(t, account.Recipes, 1)
	assert.Equal(t, r.ID, account.Recipes[0].ID)

	// A logs out: the cookie is gone and the old token is dead.
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, alice.do(http.MethodGet, "/account", nil, nil))

	replay := newAppClient(t, srv.URL)
	replay.bearer = aliceSession.Token
	assert.Equal(t, http.StatusUnauthorized, replay.do(http.MethodGet, "/account", nil, nil))

	// B logs in and cannot touch R.
	require.Equal(t, http.StatusCreated, register(bob, "bob", "bob@example.com"))
	login(bob, "bob")

	var errResp handlers.ErrorResponse
	assert.Equal(t, http.StatusForbidden, bob.do(http.MethodPost, recipePath+"/delete", nil, &errResp))
	assert.NotEmpty(t, errResp.Error)
	assert.Equal(t, http.StatusForbidden, bob.do(http.MethodPost, recipePath+"/update",
		handlers.RecipeRequest{Title: "Mine now", Food: "x", Text: "y"}, nil))

	var still models.RecipeDB
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, fmt.Sprintf("/all_posts/%d", r.ID), nil, &still))
	assert.Equal(t, "Chocolate Cake", still.Title)

	// Anonymous callers never reach the mutation.
	anon := newAppClient(t, srv.URL)
	assert.Equal(t, http.StatusUnauthorized, anon.do(http.MethodPost, recipePath+"/delete", nil, nil))

	// A logs back in, edits and deletes R.
	login(alice, "alice")
	var updated models.RecipeDB
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, recipePath+"/update",
		handlers.RecipeRequest{Title: "Chocolate Cake II", Food: "Dessert", Text: "Bake longer."}, &updated))
	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, "alice", updated.OwnerLogin)
	assert.Equal(t, "Chocolate Cake II", updated.Title)

	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, recipePath+"/delete", nil, nil))
	assert.Equal(t, http.StatusNotFound, alice.do(http.MethodGet, recipePath, nil, nil))
}

func TestRegisterSameEmailTwice(t *testing.T) {
	srv := newTestServer(t)
	c := newAppClient(t, srv.URL)

	require.Equal(t, http.StatusCreated, register(c, "alice", "shared@example.com"))
	assert.Equal(t, http.StatusBadRequest, register(c, "alice2", "shared@example.com"))

	var users []models.UserProfile
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/user/user_reg", nil, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Login)
}

func TestLoginFailureCreatesNoSession(t *testing.T) {
	srv := newTestServer(t)
	c := newAppClient(t, srv.URL)

	require.Equal(t, http.StatusCreated, register(c, "alice", "alice@example.com"))

	var unknown, wrong handlers.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/user/login", handlers.LoginRequest{Login: "nobody", Password: "x"}, &unknown))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/user/login", handlers.LoginRequest{Login: "alice", Password: "wrong"}, &wrong))
	assert.Equal(t, unknown, wrong)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/account", nil, nil))
}

func TestSearchFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newAppClient(t, srv.URL)

	require.Equal(t, http.StatusCreated, register(c, "alice", "alice@example.com"))
	login(c, "alice")

	for _, title := range []string{"Chocolate Cake", "Pancakes", "Soup"} {
		require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/user_recipe/new_recipe",
			handlers.RecipeRequest{Title: title, Food: "Food", Text: "Cook."}, nil))
	}

	anon := newAppClient(t, srv.URL)
	var resp handlers.SearchResponse
	require.Equal(t, http.StatusOK, anon.do(http.MethodPost, "/search", handlers.SearchRequest{Query: "cake"}, &resp))

	titles := make([]string, 0, len(resp.Recipes))
	for _, r := range resp.Recipes {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"Chocolate Cake", "Pancakes"}, titles)

	assert.Equal(t, http.StatusBadRequest, anon.do(http.MethodPost, "/search", handlers.SearchRequest{Query: "  "}, nil))
}
