package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
)

// CreatePayment persists a new payment to the database.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentCompleted
	}
	if payment.Type == "" {
		payment.Type = models.PaymentTypeSettlement
	}

	if err := groupExists(ctx, s.db, payment.GroupID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, group_id, from_user_id, from_user_name, to_user_id, to_user_name,
		 amount, description, status, type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.GroupID, payment.FromUserID, payment.FromUserName,
		payment.ToUserID, payment.ToUserName, formatAmount(payment.Amount),
		payment.Description, payment.Status, payment.Type, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// ListPaymentsByGroup retrieves all payments for a group in recording order.
func (s *SQLiteStore) ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_user_id, from_user_name, to_user_id, to_user_name,
		 amount, description, status, type, created_at
		 FROM payments WHERE group_id = ? ORDER BY created_at, rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by group: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var amount string

		if err := rows.Scan(&payment.ID, &payment.GroupID, &payment.FromUserID, &payment.FromUserName,
			&payment.ToUserID, &payment.ToUserName, &amount, &payment.Description,
			&payment.Status, &payment.Type, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payment.Amount = parseAmount(amount)

		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
