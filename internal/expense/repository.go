package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akasem/divvy/internal/money"
)

// Repository handles expense and share data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts a new expense into the database
func (r *Repository) CreateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount, currency_code, exchange_rate, converted_amount, payment_type, split_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, group_id, payer_id, description, amount, currency_code, exchange_rate, converted_amount, payment_type, split_type, created_at
	`

	created := &Expense{}
	err := r.db.QueryRowContext(ctx, query,
		e.GroupID,
		e.PayerID,
		e.Description,
		e.Amount,
		e.CurrencyCode,
		e.ExchangeRate,
		e.ConvertedAmount,
		e.PaymentType,
		e.SplitType,
	).Scan(
		&created.ID,
		&created.GroupID,
		&created.PayerID,
		&created.Description,
		&created.Amount,
		&created.CurrencyCode,
		&created.ExchangeRate,
		&created.ConvertedAmount,
		&created.PaymentType,
		&created.SplitType,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return created, nil
}

// CreateShare inserts a new share into the database
func (r *Repository) CreateShare(ctx context.Context, expenseID, memberID int64, amount, convertedAmount money.Amount) (*Share, error) {
	query := `
		INSERT INTO expense_shares (expense_id, member_id, amount, converted_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_id, member_id, amount, converted_amount
	`

	share := &Share{}
	err := r.db.QueryRowContext(ctx, query, expenseID, memberID, amount, convertedAmount).Scan(
		&share.ID,
		&share.ExpenseID,
		&share.MemberID,
		&share.Amount,
		&share.ConvertedAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	return share, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.currency_code, e.exchange_rate, e.converted_amount, e.payment_type, e.split_type, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.CurrencyCode,
		&expense.ExchangeRate,
		&expense.ConvertedAmount,
		&expense.PaymentType,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSharesByExpenseID retrieves all shares for an expense
func (r *Repository) GetSharesByExpenseID(ctx context.Context, expenseID int64) ([]*Share, error) {
	query := `
		SELECT s.id, s.expense_id, s.member_id, s.amount, s.converted_amount, u.username
		FROM expense_shares s
		JOIN users u ON s.member_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []*Share
	for rows.Next() {
		share := &Share{}
		if err := rows.Scan(
			&share.ID,
			&share.ExpenseID,
			&share.MemberID,
			&share.Amount,
			&share.ConvertedAmount,
			&share.MemberName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}

	return shares, nil
}

// ListExpensesByGroupID retrieves all expenses for a group
func (r *Repository) ListExpensesByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	// Get expenses
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.currency_code, e.exchange_rate, e.converted_amount, e.payment_type, e.split_type, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.CurrencyCode,
			&expense.ExchangeRate,
			&expense.ConvertedAmount,
			&expense.PaymentType,
			&expense.SplitType,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// DeleteExpense deletes an expense and its shares
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	// Delete shares first (foreign key constraint)
	_, err := r.db.ExecContext(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shares: %w", err)
	}

	// Delete expense
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found")
	}

	return nil
}
