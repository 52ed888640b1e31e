package activity

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles activity feed persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new activity repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new feed entry into the database
func (r *Repository) Create(ctx context.Context, recipientID int64, message string, entityType *string, entityID *int64) (*Entry, error) {
	query := `
		INSERT INTO activity_entries (recipient_id, message, related_entity_type, related_entity_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, recipient_id, message, is_read, related_entity_type, related_entity_id, created_at
	`

	entry := &Entry{}
	err := r.db.QueryRowContext(ctx, query, recipientID, message, entityType, entityID).Scan(
		&entry.ID,
		&entry.RecipientID,
		&entry.Message,
		&entry.IsRead,
		&entry.RelatedEntityType,
		&entry.RelatedEntityID,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity entry: %w", err)
	}

	return entry, nil
}

// GetByID retrieves a feed entry by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Entry, error) {
	query := `
		SELECT id, recipient_id, message, is_read, related_entity_type, related_entity_id, created_at
		FROM activity_entries
		WHERE id = $1
	`

	entry := &Entry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.RecipientID,
		&entry.Message,
		&entry.IsRead,
		&entry.RelatedEntityType,
		&entry.RelatedEntityID,
		&entry.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get activity entry: %w", err)
	}

	return entry, nil
}

// ListByRecipientID retrieves feed entries for a user, newest first
func (r *Repository) ListByRecipientID(ctx context.Context, recipientID int64, limit, offset int, unreadOnly bool) ([]*Entry, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM activity_entries WHERE recipient_id = $1`
	if unreadOnly {
		countQuery += ` AND is_read = false`
	}
	if err := r.db.QueryRowContext(ctx, countQuery, recipientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	// Get entries
	query := `
		SELECT id, recipient_id, message, is_read, related_entity_type, related_entity_id, created_at
		FROM activity_entries
		WHERE recipient_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = false`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.RecipientID,
			&entry.Message,
			&entry.IsRead,
			&entry.RelatedEntityType,
			&entry.RelatedEntityID,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

// MarkAsRead marks a feed entry as read
func (r *Repository) MarkAsRead(ctx context.Context, id int64) error {
	query := `UPDATE activity_entries SET is_read = true WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark activity entry as read: %w", err)
	}
	return nil
}

// MarkAllAsRead marks all feed entries as read for a user
func (r *Repository) MarkAllAsRead(ctx context.Context, recipientID int64) error {
	query := `UPDATE activity_entries SET is_read = true WHERE recipient_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark all activity entries as read: %w", err)
	}
	return nil
}

// GetUnreadCount returns the count of unread feed entries for a user
func (r *Repository) GetUnreadCount(ctx context.Context, recipientID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM activity_entries WHERE recipient_id = $1 AND is_read = false`
	if err := r.db.QueryRowContext(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread activity entries: %w", err)
	}
	return count, nil
}
