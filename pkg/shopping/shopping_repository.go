package shopping

import (
	"context"
	"fmt"

	"foodgram/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const aggregateQuery = `
	SELECT i.name, i.measurement_unit, SUM(ri.amount) AS total_amount
	FROM shopping_cart_items sc
	JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
	JOIN ingredients i ON i.id = ri.ingredient_id
	WHERE sc.user_id = $1
	GROUP BY i.name, i.measurement_unit
	ORDER BY i.name, i.measurement_unit
`

type (
	ShoppingRepository interface {
		AggregateForUser(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error)
	}

	shoppingRepository struct {
		db *sqlx.DB
	}
)

// NewShoppingRepository runs the aggregation as a single read, so the totals come from one snapshot of the cart.
func NewShoppingRepository(db *sqlx.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) AggregateForUser(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error) {
	items := []domain.ShoppingListItem{}
	if err := r.db.SelectContext(ctx, &items, aggregateQuery, userID); err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}
	return items, nil
}
