package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/expediting"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

type Store struct {
	db      *sql.DB
	timeout time.Duration
}

func New(db *sql.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

const fromActive = `
	FROM purchase_orders po
	JOIN projects p ON p.id = po.project_id
	JOIN suppliers sup ON sup.id = po.supplier_id
	LEFT JOIN po_metadata m ON m.po_id = po.id AND m.active
	WHERE po.active`

func where(q expediting.Query) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)

	add := func(cond string, v any) {
		args = append(args, v)
		fmt.Fprintf(&b, " AND "+cond, len(args))
	}

	if q.ProjectNumber != "" {
		add("p.project_number = $%d", q.ProjectNumber)
	}

	if q.SupplierName != "" {
		add("sup.name ILIKE '%%' || $%d || '%%'", q.SupplierName)
	}

	if q.Status != nil {
		add("po.status = $%d", string(*q.Status))
	}

	if q.UpdatedFrom != nil {
		add("po.updated_at >= $%d", *q.UpdatedFrom)
	}

	if q.UpdatedTo != nil {
		// inclusive of the whole end day
		add("po.updated_at < $%d", q.UpdatedTo.AddDate(0, 0, 1))
	}

	return b.String(), args
}

func (s *Store) CountActive(ctx context.Context, q expediting.Query) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cond, args := where(q)

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*)`+fromActive+cond, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting active purchase orders: %w", err)
	}

	return n, nil
}

func (s *Store) ListActive(ctx context.Context, q expediting.Query, limit, offset int) ([]expediting.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cond, args := where(q)

	dir := "DESC"
	if q.Ascending {
		dir = "ASC"
	}

	// Sort is normalised to a known column before it reaches the store.
	order := fmt.Sprintf(" ORDER BY po.%s %s, po.po_number %s", q.Sort, dir, dir)

	args = append(args, limit, offset)
	query := `
		SELECT po.id, po.po_number, p.project_number, sup.name, po.status,
			po.current_revision, m.delivery_date, po.updated_at` +
		fromActive + cond + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing active purchase orders: %w", err)
	}
	defer rows.Close()

	var out []expediting.Row

	for rows.Next() {
		var (
			r      expediting.Row
			status string
		)

		if err := rows.Scan(
			&r.POID, &r.PONumber, &r.ProjectNumber, &r.SupplierName, &status,
			&r.Revision, &r.DeliveryDate, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning expediting row: %w", err)
		}

		r.Status = purchaseorder.Status(status)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expediting rows: %w", err)
	}

	return out, nil
}

const lineItemColumns = `id, po_id, description, quantity, qty_received, exped_expected_date, exped_completed_date`

type scanner interface {
	Scan(dest ...any) error
}

func scanLineItem(s scanner) (*expediting.LineItem, error) {
	var (
		li       expediting.LineItem
		received decimal.NullDecimal
	)

	if err := s.Scan(&li.ID, &li.POID, &li.Description, &li.Quantity, &received, &li.ExpectedDate, &li.CompletedDate); err != nil {
		return nil, err
	}

	if received.Valid {
		li.QtyReceived = &received.Decimal
	}

	return &li, nil
}

func (s *Store) ListLineItems(ctx context.Context, poID uuid.UUID) ([]expediting.LineItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT `+lineItemColumns+`
		FROM po_line_items
		WHERE po_id = $1 AND active
		ORDER BY position, id`, poID)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	var items []expediting.LineItem

	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}

		items = append(items, *li)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}

	return items, nil
}

func (s *Store) PatchLineItem(ctx context.Context, id uuid.UUID, patch expediting.LineItemPatch) (*expediting.LineItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		sets []string
		args []any
	)

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.QtyReceived != nil {
		set("qty_received", *patch.QtyReceived)
	}

	if patch.ExpectedDate.Set {
		set("exped_expected_date", patch.ExpectedDate.Value)
	}

	if patch.CompletedDate.Set {
		set("exped_completed_date", patch.CompletedDate.Value)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE po_line_items SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), lineItemColumns)

	li, err := scanLineItem(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, expediting.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("patching line item: %w", err)
	}

	return li, nil
}
