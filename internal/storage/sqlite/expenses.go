package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

const expenseColumns = `id, group_id, title, description, category, amount,
	created_by, created_by_name, status, created_at`

// CreateExpense persists a new expense with its participant shares.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Status == "" {
		expense.Status = models.ExpensePending
	}
	if expense.Category == "" {
		expense.Category = "General"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := groupExists(ctx, tx, expense.GroupID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Title, expense.Description, expense.Category,
		formatAmount(expense.Amount), expense.CreatedBy, expense.CreatedByName,
		expense.Status, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, p := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, position, participant_id, name, amount) VALUES (?, ?, ?, ?, ?)",
			expense.ID, i, p.ID, p.Name, formatAmount(p.Amount),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its participant shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`,
		expenseID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: expense %s", storage.ErrNotFound, expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadParticipants(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ? ORDER BY created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	for _, expense := range expenses {
		if err := s.loadParticipants(ctx, expense); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

// SetExpenseStatus updates the status of an expense.
func (s *SQLiteStore) SetExpenseStatus(ctx context.Context, expenseID, status string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE expenses SET status = ? WHERE id = ?", status, expenseID)
	if err != nil {
		return fmt.Errorf("failed to update expense status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: expense %s", storage.ErrNotFound, expenseID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount string
	err := row.Scan(&expense.ID, &expense.GroupID, &expense.Title, &expense.Description, &expense.Category,
		&amount, &expense.CreatedBy, &expense.CreatedByName, &expense.Status, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	expense.Amount = parseAmount(amount)
	return expense, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, name, amount FROM expense_participants WHERE expense_id = ? ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		var amount string
		if err := rows.Scan(&p.ID, &p.Name, &amount); err != nil {
			return fmt.Errorf("failed to scan expense participant: %w", err)
		}
		p.Amount = parseAmount(amount)
		expense.Participants = append(expense.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense participants: %w", err)
	}
	return nil
}
