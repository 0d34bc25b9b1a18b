package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/poflow/internal/report"
)

type Store struct {
	db      *sql.DB
	timeout time.Duration
}

func New(db *sql.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

// ListSpendLines returns one line per active, non-cancelled PO.
func (s *Store) ListSpendLines(ctx context.Context, filter report.Filter) ([]report.Line, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `
		WITH raised AS (
			SELECT po_number, MIN(created_at) AS raised_at
			FROM purchase_orders
			GROUP BY po_number
		)
		SELECT po.id, po.po_number, p.project_number, p.name, sup.name, r.raised_at,
			COALESCE((
				SELECT SUM(li.quantity * li.unit_price)
				FROM po_line_items li
				WHERE li.po_id = po.id AND li.active
			), 0)
		FROM purchase_orders po
		JOIN raised r ON r.po_number = po.po_number
		JOIN projects p ON p.id = po.project_id
		JOIN suppliers sup ON sup.id = po.supplier_id
		WHERE po.active AND po.status <> 'cancelled'`

	var args []any

	argIdx := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND r.raised_at >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND r.raised_at < $%d", argIdx)

		args = append(args, filter.To.AddDate(0, 0, 1))
		argIdx++
	}

	if filter.ProjectNumber != "" {
		query += fmt.Sprintf(" AND p.project_number = $%d", argIdx)

		args = append(args, filter.ProjectNumber)
	}

	query += " ORDER BY po.po_number"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing spend lines: %w", err)
	}
	defer rows.Close()

	var lines []report.Line

	for rows.Next() {
		var l report.Line
		if err := rows.Scan(&l.POID, &l.PONumber, &l.ProjectNumber, &l.ProjectName, &l.SupplierName, &l.RaisedAt, &l.Net); err != nil {
			return nil, fmt.Errorf("scanning spend line: %w", err)
		}

		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spend lines: %w", err)
	}

	return lines, nil
}
