package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/poflow/internal/accounts"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

type Store struct {
	db      *sql.DB
	timeout time.Duration
}

func New(db *sql.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

func (s *Store) ListEntries(ctx context.Context, filter accounts.Filter) ([]accounts.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `
		SELECT po.id, po.po_number, p.project_number, sup.name, po.status, po.current_revision,
			po.acc_complete, po.invoice_reference, po.updated_at,
			COALESCE((
				SELECT SUM(li.quantity * li.unit_price)
				FROM po_line_items li
				WHERE li.po_id = po.id AND li.active
			), 0)
		FROM purchase_orders po
		JOIN projects p ON p.id = po.project_id
		JOIN suppliers sup ON sup.id = po.supplier_id
		WHERE po.active`

	var args []any

	argIdx := 1

	if filter.AccComplete != nil {
		query += fmt.Sprintf(" AND po.acc_complete = $%d", argIdx)

		args = append(args, *filter.AccComplete)
		argIdx++
	}

	if filter.ProjectNumber != "" {
		query += fmt.Sprintf(" AND p.project_number = $%d", argIdx)

		args = append(args, filter.ProjectNumber)
	}

	query += " ORDER BY po.po_number DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts entries: %w", err)
	}
	defer rows.Close()

	var entries []accounts.Entry

	for rows.Next() {
		var (
			e      accounts.Entry
			status string
			ref    sql.NullString
		)

		if err := rows.Scan(
			&e.POID, &e.PONumber, &e.ProjectNumber, &e.SupplierName, &status, &e.Revision,
			&e.AccComplete, &ref, &e.UpdatedAt, &e.Net,
		); err != nil {
			return nil, fmt.Errorf("scanning accounts entry: %w", err)
		}

		e.Status = purchaseorder.Status(status)
		if ref.Valid {
			e.InvoiceReference = &ref.String
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts entries: %w", err)
	}

	return entries, nil
}

// UpdateAccounts bumps updated_at so an open edit form on the same PO
// fails its precondition instead of overwriting these fields.
func (s *Store) UpdateAccounts(ctx context.Context, poID uuid.UUID, u accounts.Update) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sets := []string{"updated_at = NOW()"}

	var args []any

	if u.AccComplete != nil {
		args = append(args, *u.AccComplete)
		sets = append(sets, fmt.Sprintf("acc_complete = $%d", len(args)))
	}

	if u.InvoiceReference != nil {
		var ref any
		if *u.InvoiceReference != "" {
			ref = *u.InvoiceReference
		}

		args = append(args, ref)
		sets = append(sets, fmt.Sprintf("invoice_reference = $%d", len(args)))
	}

	args = append(args, poID)
	query := fmt.Sprintf("UPDATE purchase_orders SET %s WHERE id = $%d AND active", strings.Join(sets, ", "), len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating accounts fields: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating accounts fields: %w", err)
	}

	if n == 0 {
		return accounts.ErrNotFound
	}

	return nil
}
