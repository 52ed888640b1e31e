package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akasem/divvy/internal/expense"
)

// Repository loads the ledger snapshot the solver computes over. Settlements
// themselves are never persisted.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetGroupLedger fetches a group's members and its full expense history with
// shares, in creation order, as one consistent snapshot.
func (r *Repository) GetGroupLedger(ctx context.Context, groupID int64) (*Ledger, error) {
	members, err := r.getMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	entries, err := r.getEntries(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &Ledger{Members: members, Entries: entries}, nil
}

func (r *Repository) getMembers(ctx context.Context, groupID int64) ([]Member, error) {
	query := `
		SELECT u.id, u.username
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
		ORDER BY gm.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *Repository) getEntries(ctx context.Context, groupID int64) ([]*expense.ExpenseWithShares, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.currency_code,
		       e.exchange_rate, e.converted_amount, e.payment_type, e.split_type, e.created_at
		FROM expenses e
		WHERE e.group_id = $1
		ORDER BY e.created_at, e.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group expenses: %w", err)
	}
	defer rows.Close()

	var entries []*expense.ExpenseWithShares
	byID := make(map[int64]*expense.ExpenseWithShares)
	for rows.Next() {
		e := &expense.Expense{}
		if err := rows.Scan(
			&e.ID,
			&e.GroupID,
			&e.PayerID,
			&e.Description,
			&e.Amount,
			&e.CurrencyCode,
			&e.ExchangeRate,
			&e.ConvertedAmount,
			&e.PaymentType,
			&e.SplitType,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		entry := &expense.ExpenseWithShares{Expense: e}
		entries = append(entries, entry)
		byID[e.ID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shareQuery := `
		SELECT s.id, s.expense_id, s.member_id, s.amount, s.converted_amount
		FROM expense_shares s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.group_id = $1
		ORDER BY s.id
	`

	shareRows, err := r.db.QueryContext(ctx, shareQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer shareRows.Close()

	for shareRows.Next() {
		s := &expense.Share{}
		if err := shareRows.Scan(&s.ID, &s.ExpenseID, &s.MemberID, &s.Amount, &s.ConvertedAmount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		if entry, ok := byID[s.ExpenseID]; ok {
			entry.Shares = append(entry.Shares, s)
		}
	}
	return entries, shareRows.Err()
}
