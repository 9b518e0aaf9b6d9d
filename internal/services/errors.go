package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/abner-serafim/2025-api-arq/internal/apperr"
)

// translateStorage classifies persistence failures. Unique-key violations are
// surfaced as conflicts (detected, not prevented); everything else is a
// storage error. Requires gorm's TranslateError so driver-specific duplicate
// key errors arrive as gorm.ErrDuplicatedKey.
func translateStorage(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflictf("%s: %w", op, err)
	}
	return apperr.Storagef("%s: %w", op, err)
}
