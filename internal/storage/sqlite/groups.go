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

const groupColumns = "id, title, category, category_icon, admin_id, admin_name, amount, created_at"

func scanGroup(row rowScanner) (*models.Group, error) {
	group := &models.Group{}
	var amount string
	if err := row.Scan(&group.ID, &group.Title, &group.Category, &group.CategoryIcon,
		&group.AdminID, &group.AdminName, &amount, &group.CreatedAt); err != nil {
		return nil, err
	}
	group.Amount = parseAmount(amount)
	return group, nil
}

// CreateGroup persists a new group with its roster and bills.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate ID if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups ("+groupColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		group.ID, group.Title, group.Category, group.CategoryIcon,
		group.AdminID, group.AdminName, formatAmount(group.Amount), group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if err := insertMembers(ctx, tx, group.ID, group.Members); err != nil {
		return err
	}

	for i := range group.Bills {
		if err := insertBill(ctx, tx, group.ID, &group.Bills[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including its roster and bills.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := scanGroup(s.db.QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM groups WHERE id = ?",
		groupID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: group %s", storage.ErrNotFound, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadRoster(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// ListGroupsByMember returns every group where userID is the admin or a member.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+groupColumns+` FROM groups
		 WHERE admin_id = ? OR id IN (SELECT group_id FROM group_members WHERE member_id = ?)
		 ORDER BY created_at DESC, id`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups by member: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	rows.Close()

	for _, group := range groups {
		if err := s.loadRoster(ctx, group); err != nil {
			return nil, err
		}
	}

	return groups, nil
}

// AddGroupMembers appends members not already on the roster.
func (s *SQLiteStore) AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := groupExists(ctx, tx, groupID); err != nil {
		return err
	}

	if err := insertMembers(ctx, tx, groupID, members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AddBill appends a bill to a group.
func (s *SQLiteStore) AddBill(ctx context.Context, groupID string, bill *models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := groupExists(ctx, tx, groupID); err != nil {
		return err
	}

	if err := insertBill(ctx, tx, groupID, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertMembers adds members after the current last position, skipping ids
// already present.
func insertMembers(ctx context.Context, tx *sql.Tx, groupID string, members []models.Member) error {
	var next int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) + 1 FROM group_members WHERE group_id = ?",
		groupID,
	).Scan(&next); err != nil {
		return fmt.Errorf("failed to get member position: %w", err)
	}

	for _, m := range members {
		if m.ID == "" {
			continue
		}
		res, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_members (group_id, member_id, name, email, position) VALUES (?, ?, ?, ?, ?)",
			groupID, m.ID, m.Name, m.Email, next,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			next++
		}
	}
	return nil
}

func insertBill(ctx context.Context, tx *sql.Tx, groupID string, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}

	var next int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) + 1 FROM bills WHERE group_id = ?",
		groupID,
	).Scan(&next); err != nil {
		return fmt.Errorf("failed to get bill position: %w", err)
	}

	_, err := tx.ExecContext(ctx,
		"INSERT INTO bills (id, group_id, name, amount, date, paid_by, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
		bill.ID, groupID, bill.Name, formatAmount(bill.Amount), bill.Date, bill.PaidBy, next,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// loadRoster fills in the members and bills of a group.
func (s *SQLiteStore) loadRoster(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, name, email FROM group_members WHERE group_id = ? ORDER BY position",
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return fmt.Errorf("failed to scan member: %w", err)
		}
		group.Members = append(group.Members, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate members: %w", err)
	}

	billRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount, date, paid_by FROM bills WHERE group_id = ? ORDER BY position",
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get bills: %w", err)
	}
	defer billRows.Close()

	for billRows.Next() {
		var bill models.Bill
		var amount string
		if err := billRows.Scan(&bill.ID, &bill.Name, &amount, &bill.Date, &bill.PaidBy); err != nil {
			return fmt.Errorf("failed to scan bill: %w", err)
		}
		bill.Amount = parseAmount(amount)
		group.Bills = append(group.Bills, bill)
	}
	if err := billRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate bills: %w", err)
	}

	return nil
}
