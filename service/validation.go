package service

import "fmt"

// Size caps bound what a single request can add to the shared document;
// everything lives in one remote blob, so unbounded fields grow every
// subsequent load and save.
const (
	maxUsernameLength = 64
	maxContentLength  = 4096
	maxCategoryLength = 64

	// bcrypt ignores password bytes beyond 72, so longer inputs would
	// silently verify against truncated material.
	maxPasswordLength = 72
)

func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username too long", ErrInvalidInput)
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password too long", ErrInvalidInput)
	}
	return nil
}

func ValidateContent(content string) error {
	if content == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if len(content) > maxContentLength {
		return fmt.Errorf("%w: content too long", ErrInvalidInput)
	}
	return nil
}

func ValidateCategory(category string) error {
	if len(category) > maxCategoryLength {
		return fmt.Errorf("%w: category too long", ErrInvalidInput)
	}
	return nil
}
