package domain

import "github.com/google/uuid"

// Viewer is the identity a request is made on behalf of. The zero value is anonymous.
type Viewer struct {
	ID uuid.UUID
}

func Anonymous() Viewer {
	return Viewer{}
}

func NewViewer(id uuid.UUID) Viewer {
	return Viewer{ID: id}
}

func (v Viewer) IsAnonymous() bool {
	return v.ID == uuid.Nil
}

// Is reports whether the viewer is the authenticated user id.
func (v Viewer) Is(id uuid.UUID) bool {
	return !v.IsAnonymous() && v.ID == id
}

// ListKind selects one of the per-user recipe lists.
type ListKind int

const (
	ListFavorite ListKind = iota + 1
	ListShoppingCart
)

func (k ListKind) Valid() bool {
	return k == ListFavorite || k == ListShoppingCart
}

func (k ListKind) String() string {
	switch k {
	case ListFavorite:
		return "favorites"
	case ListShoppingCart:
		return "shopping cart"
	default:
		return "unknown list"
	}
}
