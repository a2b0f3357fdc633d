package recipes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/huevitoia/chef/internal/errors"
	"github.com/huevitoia/chef/internal/services/generation"
)

// SavedRecipe is one recipe persisted for a signed-in user.
type SavedRecipe struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	RecipeName   string    `json:"recipeName"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	ImageURL     string    `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store persists generated recipes per owner.
type Store interface {
	Save(ctx context.Context, result *generation.RecipeResult, ownerID string) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]SavedRecipe, error)
}

// PostgresStore keeps recipes in the recipes table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Save writes one recipe row owned by ownerID and returns its ID.
// An empty owner fails fast without touching the database.
func (s *PostgresStore) Save(ctx context.Context, result *generation.RecipeResult, ownerID string) (string, error) {
	if ownerID == "" {
		return "", apperrors.NewStorageError("recipe owner is required", "MISSING_OWNER", nil)
	}

	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO recipes (id, owner_id, recipe_name, ingredients, instructions, image_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())`,
		id, ownerID, result.RecipeName, result.Ingredients, result.Instructions, result.ImageURL,
	)
	if err != nil {
		return "", apperrors.NewStorageError("failed to save recipe", "RECIPE_SAVE_FAILED", err)
	}
	return id, nil
}

// ListByOwner returns the owner's recipes, newest first.
func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID string) ([]SavedRecipe, error) {
	if ownerID == "" {
		return nil, apperrors.NewStorageError("recipe owner is required", "MISSING_OWNER", nil)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, recipe_name, ingredients, instructions, image_url, created_at
		 FROM recipes
		 WHERE owner_id = $1
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list recipes", "RECIPE_LIST_FAILED", err)
	}
	defer rows.Close()

	var out []SavedRecipe
	for rows.Next() {
		var r SavedRecipe
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.RecipeName, &r.Ingredients, &r.Instructions, &r.ImageURL, &r.CreatedAt); err != nil {
			return nil, apperrors.NewStorageError("failed to scan recipe row", "RECIPE_SCAN_FAILED", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to read recipe rows", "RECIPE_READ_FAILED", err)
	}
	return out, nil
}
