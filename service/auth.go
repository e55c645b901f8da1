package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vlnch/anonbox/models"
)

// bcryptCost matches the cost factor the stored hashes were created with.
const bcryptCost = 10

// Register creates an account and returns its session credential. The new
// account is not committed if the document save fails.
func (s *Service) Register(ctx context.Context, username string, password string) (SessionCredential, error) {
	if err := ValidateUsername(username); err != nil {
		return "", err
	}
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	err := s.Store.Update(ctx, func(doc *models.Document) error {
		for _, account := range doc.Users {
			if account.Username == username {
				return ErrUserExists
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return err
		}

		doc.Users = append(doc.Users, models.Account{
			Username:     username,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	return SessionCredential(username), nil
}

// Login verifies credentials and returns the session credential. Unknown
// username and wrong password produce the same error, so a caller learns
// nothing about which accounts exist.
func (s *Service) Login(ctx context.Context, username string, password string) (SessionCredential, error) {
	if err := ValidateUsername(username); err != nil {
		return "", err
	}
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	doc, err := s.Store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	for _, account := range doc.Users {
		if account.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
			return "", ErrInvalidCredentials
		}
		return SessionCredential(username), nil
	}

	return "", ErrInvalidCredentials
}
