package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var recipeColumns = []string{"id", "title", "category", "body", "owner_login", "created_at"}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func buildGetRecipeQuery(id int64, forUpdate bool) (string, []any, error) {
	b := psql.Select(recipeColumns...).From("recipes").Where(sq.Eq{"id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	return b.ToSql()
}

func newestRecipes() sq.SelectBuilder {
	return psql.Select(recipeColumns...).From("recipes").OrderBy("created_at DESC", "id DESC")
}

func buildListRecipesQuery() (string, []any, error) {
	return newestRecipes().ToSql()
}

// The owner filter is unconditional: an empty login matches no recipe.
func buildListRecipesByOwnerQuery(ownerLogin string) (string, []any, error) {
	return newestRecipes().Where(sq.Eq{"owner_login": ownerLogin}).ToSql()
}

func buildSearchByTitleQuery(term string) (string, []any, error) {
	return psql.Select(recipeColumns...).
		From("recipes").
		Where(sq.ILike{"title": "%" + likeEscaper.Replace(term) + "%"}).
		OrderBy("title ASC", "id ASC").
		ToSql()
}

// RecipeReadRepository handles recipe read operations
type RecipeReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewRecipeReadRepository creates a new repository instance
func NewRecipeReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *RecipeReadRepository {
	return &RecipeReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the recipe with the given id, or nil when there is none.
func (r *RecipeReadRepository) GetByID(ctx context.Context, id int64) (*models.RecipeDB, error) {
	query, args, err := buildGetRecipeQuery(id, false)
	if err != nil {
		return nil, err
	}
	return getRecipe(ctx, executor(ctx, r.db, r.txGetter), query, args)
}

// List returns every recipe, newest first.
func (r *RecipeReadRepository) List(ctx context.Context) ([]models.RecipeDB, error) {
	query, args, err := buildListRecipesQuery()
	if err != nil {
		return nil, err
	}
	return selectRecipes(ctx, executor(ctx, r.db, r.txGetter), query, args)
}

// ListByOwner returns the recipes created by ownerLogin, newest first.
func (r *RecipeReadRepository) ListByOwner(ctx context.Context, ownerLogin string) ([]models.RecipeDB, error) {
	query, args, err := buildListRecipesByOwnerQuery(ownerLogin)
	if err != nil {
		return nil, err
	}
	return selectRecipes(ctx, executor(ctx, r.db, r.txGetter), query, args)
}

// SearchByTitle returns recipes whose title contains term, ignoring case, ordered by title.
func (r *RecipeReadRepository) SearchByTitle(ctx context.Context, term string) ([]models.RecipeDB, error) {
	query, args, err := buildSearchByTitleQuery(term)
	if err != nil {
		return nil, err
	}
	return selectRecipes(ctx, executor(ctx, r.db, r.txGetter), query, args)
}

// RecipeWriteRepository handles recipe write operations
type RecipeWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewRecipeWriteRepository creates a new repository instance
func NewRecipeWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a recipe owned by ownerLogin and returns the stored row.
func (r *RecipeWriteRepository) Save(ctx context.Context, ownerLogin string, fields models.RecipeFields) (*models.RecipeDB, error) {
	query := `
		INSERT INTO recipes (title, category, body, owner_login, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + strings.Join(recipeColumns, ", ")
	args := []any{fields.Title, fields.Category, fields.Body, ownerLogin}

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &recipe, query, args...)

	logQuery(query, args, recipe.ID, err)

	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetByIDForUpdate loads a recipe and locks its row until the surrounding
// transaction ends. Returns nil when there is no such recipe.
func (r *RecipeWriteRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.RecipeDB, error) {
	query, args, err := buildGetRecipeQuery(id, true)
	if err != nil {
		return nil, err
	}
	return getRecipe(ctx, executor(ctx, r.db, r.txGetter), query, args)
}

// Update replaces the editable fields of a recipe and returns the stored row.
// id and created_at are never touched. Returns nil when there is no such recipe.
func (r *RecipeWriteRepository) Update(ctx context.Context, id int64, fields models.RecipeFields) (*models.RecipeDB, error) {
	query := `
		UPDATE recipes
		SET title = $1, category = $2, body = $3
		WHERE id = $4
		RETURNING ` + strings.Join(recipeColumns, ", ")
	return getRecipe(ctx, executor(ctx, r.db, r.txGetter), query,
		[]any{fields.Title, fields.Category, fields.Body, id})
}

// Delete removes a recipe. It reports whether a row was removed.
func (r *RecipeWriteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM recipes WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id}, rowsAffected, err)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func getRecipe(ctx context.Context, q sqlx.QueryerContext, query string, args []any) (*models.RecipeDB, error) {
	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, q, &recipe, query, args...)

	logQuery(query, args, recipe.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func selectRecipes(ctx context.Context, q sqlx.QueryerContext, query string, args []any) ([]models.RecipeDB, error) {
	recipes := []models.RecipeDB{}
	err := sqlx.SelectContext(ctx, q, &recipes, query, args...)

	logQuery(query, args, len(recipes), err)

	if err != nil {
		return nil, err
	}
	return recipes, nil
}
