// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"strings"
)

const (
	maxTitleLen = 200
	maxTextLen  = 10000
)

// ValidateTitle checks a post title for presence and length.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", maxTitleLen)
	}
	return nil
}

// ValidateText checks post or comment body text for presence and length.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	if len(text) > maxTextLen {
		return fmt.Errorf("text must not exceed %d characters", maxTextLen)
	}
	return nil
}

// ValidateMaxComments checks an optional comment cap. Nil means unlimited
// and is always valid.
func ValidateMaxComments(maxComments *int) error {
	if maxComments == nil {
		return nil
	}
	if *maxComments < 0 {
		return fmt.Errorf("maxComments must be a non-negative integer")
	}
	return nil
}

// ValidateEmail checks basic email format without pulling in a full parser;
// login failures for malformed addresses must look like any other bad login.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}
