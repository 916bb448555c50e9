package shopping

import (
	"context"
	"fmt"
	"strings"

	"foodgram/domain"
	"foodgram/internal/metrics"
)

type (
	ShoppingService interface {
		AggregateShoppingList(ctx context.Context, viewer domain.Viewer) ([]domain.ShoppingListItem, error)
		DownloadShoppingList(ctx context.Context, viewer domain.Viewer) (filename string, content []byte, err error)
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		filename           string
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, filename string) ShoppingService {
	if filename == "" {
		filename = domain.DefaultShoppingListFilename
	}
	return &shoppingService{shoppingRepository: shoppingRepository, filename: filename}
}

// AggregateShoppingList sums ingredient amounts across every recipe in the viewer's cart,
// one item per (name, measurement unit) pair.
func (s *shoppingService) AggregateShoppingList(ctx context.Context, viewer domain.Viewer) ([]domain.ShoppingListItem, error) {
	if viewer.IsAnonymous() {
		return nil, domain.ErrAnonymous
	}
	return s.shoppingRepository.AggregateForUser(ctx, viewer.ID)
}

func (s *shoppingService) DownloadShoppingList(ctx context.Context, viewer domain.Viewer) (string, []byte, error) {
	items, err := s.AggregateShoppingList(ctx, viewer)
	if err != nil {
		return "", nil, err
	}
	metrics.ShoppingListDownloads.Inc()
	return s.filename, RenderShoppingList(items), nil
}

// RenderShoppingList formats each item as "name (unit) - amount", one per line.
func RenderShoppingList(items []domain.ShoppingListItem) []byte {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%s) - %d", item.Name, item.MeasurementUnit, item.TotalAmount))
	}
	return []byte(strings.Join(lines, "\n"))
}
