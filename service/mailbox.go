package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/vlnch/anonbox/models"
)

// DefaultCategory is attached to messages submitted without one.
const DefaultCategory = "Anonymous"

// Submit appends a message for recipient. The recipient does not have to be
// a registered account; addressing an unknown username succeeds. The message
// is not committed if the document save fails, and nothing is retried.
func (s *Service) Submit(ctx context.Context, recipient string, content string, category string) error {
	if err := ValidateUsername(recipient); err != nil {
		return err
	}
	if err := ValidateContent(content); err != nil {
		return err
	}
	if err := ValidateCategory(category); err != nil {
		return err
	}

	if category == "" {
		category = DefaultCategory
	}

	// UUIDv7 ids are time-ordered, so ids stay monotonic with creation
	// order without the same-instant collisions a raw timestamp id has.
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	err = s.Store.Update(ctx, func(doc *models.Document) error {
		doc.Messages = append(doc.Messages, models.Message{
			Id:        id.String(),
			Recipient: recipient,
			Content:   content,
			Category:  category,
			CreatedAt: time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}

// Inbox returns every message addressed to the credential's username, most
// recent first. Messages sharing a timestamp keep reverse insertion order.
func (s *Service) Inbox(ctx context.Context, credential SessionCredential) ([]models.Message, error) {
	if credential == "" {
		return nil, ErrUnauthorized
	}

	doc, err := s.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	// Collect in reverse insertion order; the stable sort then leaves
	// same-timestamp messages in that order.
	inbox := make([]models.Message, 0)
	for i := len(doc.Messages) - 1; i >= 0; i-- {
		if doc.Messages[i].Recipient == string(credential) {
			inbox = append(inbox, doc.Messages[i])
		}
	}

	slices.SortStableFunc(inbox, func(a, b models.Message) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return inbox, nil
}
