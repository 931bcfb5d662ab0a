package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if an amount is positive
func ValidatePositive(value int64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNonNegative checks if an amount is non-negative
func ValidateNonNegative(value int64, fieldName string) error {
	if value < 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD calendar date
func ValidateDate(value, fieldName string) error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(value)); err != nil {
		return NewValidationError(fmt.Sprintf("%s must be a YYYY-MM-DD date", fieldName))
	}
	return nil
}

// ValidateOptionalURL accepts an empty string or an absolute http(s) URL
func ValidateOptionalURL(value, fieldName string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError(fmt.Sprintf("%s must be an http(s) URL", fieldName))
	}
	return nil
}

// ValidateGift validates basic gift data
func ValidateGift(name, link string, amount int64) error {
	if err := ValidateRequired(name, "gift name"); err != nil {
		return err
	}
	if err := ValidateOptionalURL(link, "gift link"); err != nil {
		return err
	}
	if err := ValidatePositive(amount, "gift cost"); err != nil {
		return err
	}
	if amount > MaxGiftAmount {
		return NewValidationError(ErrGiftTooLarge)
	}
	return nil
}
