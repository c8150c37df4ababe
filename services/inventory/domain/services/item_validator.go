// Package services contains stateless domain services for the inventory
// bounded context. They operate purely on domain types and have zero external
// dependencies beyond stdlib and the domain layer.
package services

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted item name, in characters.
const MaxNameLength = 255

// ValidateName enforces the business rules for an item name:
//   - at least one non-whitespace character
//   - at most MaxNameLength characters
//   - no control characters (Unicode category Cc)
//
// Surrounding whitespace is allowed and preserved.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("item name is required")
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.New("item name is too long")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.New("item name must not contain control characters")
		}
	}

	return nil
}
