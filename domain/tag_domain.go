package domain

import (
	"fmt"

	"github.com/google/uuid"
)

var (
	MessageSuccessGetTags   = "success get tags"
	MessageSuccessGetTag    = "success get tag"
	MessageSuccessCreateTag = "tag created successfully"

	MessageFailedGetTags   = "failed to get tags"
	MessageFailedGetTag    = "failed to get tag"
	MessageFailedCreateTag = "failed to create tag"

	ErrTagNotFound      = fmt.Errorf("tag %w", ErrNotFound)
	ErrTagAlreadyExists = fmt.Errorf("a tag with this name or slug %w", ErrConflict)
	ErrTagSlugEmpty     = NewFieldError("name", "name does not produce a usable slug")
)

type (
	TagCreateRequest struct {
		Name  string `json:"name" validate:"required,max=200"`
		Color string `json:"color" validate:"required,rgbcolor"`
		Slug  string `json:"slug" validate:"omitempty,max=200"`
	}

	TagResponse struct {
		ID    uuid.UUID `json:"id"`
		Name  string    `json:"name"`
		Color string    `json:"color"`
		Slug  string    `json:"slug"`
	}
)
