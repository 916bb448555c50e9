package utils

import (
	"errors"
	"fmt"
	"strings"

	"foodgram/domain"

	"gorm.io/gorm"
)

// TranslateDBError maps gorm errors (with TranslateError enabled) onto domain error kinds.
// notFound and conflict replace the generic kinds when they are non-nil.
func TranslateDBError(err error, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFound != nil {
			return notFound
		}
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if conflict != nil {
			return conflict
		}
		return domain.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: referenced record does not exist", domain.ErrNotFound)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return domain.NewFieldError("", "value violates a data constraint")
	}
	return err
}

// EscapeLike escapes the LIKE wildcards of a user supplied prefix.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
