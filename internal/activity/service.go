package activity

import (
	"context"
	"errors"

	"github.com/akasem/divvy/internal/money"
)

// Common errors
var (
	ErrEntryNotFound = errors.New("activity entry not found")
	ErrNotRecipient  = errors.New("not the recipient of this activity entry")
)

// Service handles activity feed business logic
type Service struct {
	repo *Repository
}

// NewService creates a new activity service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetByID retrieves a feed entry by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// ListByRecipientID retrieves the feed for a user
func (s *Service) ListByRecipientID(ctx context.Context, recipientID int64, page, perPage int, unreadOnly bool) ([]*Entry, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a feed entry as read
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrEntryNotFound
	}
	if entry.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all feed entries as read for a user
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the count of unread feed entries
func (s *Service) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// Helper methods for recording specific feed events. Failures here are the
// caller's to ignore; a lost feed entry never fails the underlying operation.

// RecordGroupInvite records that a user was invited to a group
func (s *Service) RecordGroupInvite(ctx context.Context, recipientID int64, groupName string, groupID int64) (*Entry, error) {
	message := "You have been invited to join group: " + groupName
	entityType := "GROUP"
	return s.repo.Create(ctx, recipientID, message, &entityType, &groupID)
}

// RecordExpenseAdded records that a member owes a share of a new expense
func (s *Service) RecordExpenseAdded(ctx context.Context, recipientID int64, payerName string, share money.Amount, currency string, expenseID int64) (*Entry, error) {
	message := payerName + " added an expense, your share is " + share.Format() + " " + currency
	entityType := "EXPENSE"
	return s.repo.Create(ctx, recipientID, message, &entityType, &expenseID)
}

// RecordExpenseDeleted records that an expense a member shared in was removed
func (s *Service) RecordExpenseDeleted(ctx context.Context, recipientID int64, payerName, description string) (*Entry, error) {
	message := payerName + " deleted the expense: " + description
	return s.repo.Create(ctx, recipientID, message, nil, nil)
}

// RecordTransfer records that a settlement payment was logged against a member
func (s *Service) RecordTransfer(ctx context.Context, recipientID int64, payerName string, amount money.Amount, currency string, transferID int64) (*Entry, error) {
	message := payerName + " recorded a payment of " + amount.Format() + " " + currency + " to you"
	entityType := "TRANSFER"
	return s.repo.Create(ctx, recipientID, message, &entityType, &transferID)
}
