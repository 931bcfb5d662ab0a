package utils

import (
	"regexp"
	"strings"
)

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// TrimmedOrNil returns nil for an empty value so optional columns stay NULL
func TrimmedOrNil(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// TrimPtr trims an optional value; nil and blank both yield nil
func TrimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	return TrimmedOrNil(*value)
}

// Deref returns the pointed-to string or ""
func Deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// UniqueStrings drops blanks and duplicates, keeping first-seen order
func UniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}

// CleanFileName removes invalid characters from filename
func CleanFileName(filename string) string {
	cleaned := invalidFileChars.ReplaceAllString(filename, "_")
	cleaned = strings.TrimSpace(cleaned)
	return whitespaceRuns.ReplaceAllString(cleaned, "_")
}
