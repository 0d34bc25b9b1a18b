package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/directory"
	dirstore "github.com/MrJamesThe3rd/poflow/internal/directory/store"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

const uniqueViolation = "23505"

type Store struct {
	db      *sql.DB
	timeout time.Duration
	dir     *dirstore.Store
}

func New(db *sql.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout, dir: dirstore.New(db, timeout)}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func storeErr(op string, err error) error {
	return &purchaseorder.StoreError{Op: op, Err: err}
}

const selectPOColumns = `
	po.id, po.po_number, po.project_id, po.supplier_id, po.delivery_address_id,
	po.manual_delivery_address, po.delivery_contact_id, po.status, po.current_revision,
	po.active, po.acc_complete, po.invoice_reference, po.created_at, po.updated_at,
	p.project_number, s.name
`

const fromPO = `
	FROM purchase_orders po
	JOIN projects p ON p.id = po.project_id
	JOIN suppliers s ON s.id = po.supplier_id
`

// scanPurchaseOrder expects the column order of selectPOColumns.
func scanPurchaseOrder(s scanner) (*purchaseorder.PurchaseOrder, error) {
	var po purchaseorder.PurchaseOrder

	var status string

	var manualAddress, invoiceRef sql.NullString

	if err := s.Scan(
		&po.ID, &po.PONumber, &po.ProjectID, &po.SupplierID, &po.DeliveryAddressID,
		&manualAddress, &po.DeliveryContactID, &status, &po.Revision,
		&po.Active, &po.AccComplete, &invoiceRef, &po.CreatedAt, &po.UpdatedAt,
		&po.ProjectNumber, &po.SupplierName,
	); err != nil {
		return nil, err
	}

	po.Status = purchaseorder.Status(status)
	po.ManualDeliveryAddress = stringPtr(manualAddress)
	po.InvoiceReference = stringPtr(invoiceRef)

	return &po, nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}

	return &ns.String
}

func (s *Store) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*purchaseorder.PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return getPurchaseOrder(ctx, s.db, id)
}

func getPurchaseOrder(ctx context.Context, q queryer, id uuid.UUID) (*purchaseorder.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(q.QueryRowContext(ctx, `SELECT `+selectPOColumns+fromPO+` WHERE po.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, purchaseorder.ErrNotFound
	}

	if err != nil {
		return nil, storeErr("get purchase order", err)
	}

	return po, nil
}

func (s *Store) GetDetail(ctx context.Context, id uuid.UUID) (*purchaseorder.Detail, error) {
	po, err := s.GetPurchaseOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &purchaseorder.Detail{PurchaseOrder: po}

	d.Metadata, err = s.GetMetadata(ctx, id)
	if err != nil && !errors.Is(err, purchaseorder.ErrNotFound) {
		return nil, err
	}

	if d.LineItems, err = s.lineItems(ctx, id); err != nil {
		return nil, err
	}

	if d.Project, err = s.dir.GetProject(ctx, po.ProjectID); err != nil {
		return nil, storeErr("get project", err)
	}

	if d.Supplier, err = s.dir.GetSupplier(ctx, po.SupplierID); err != nil {
		return nil, storeErr("get supplier", err)
	}

	if po.DeliveryAddressID != nil {
		d.DeliveryAddress, err = s.dir.GetSupplier(ctx, *po.DeliveryAddressID)
		if err != nil && !errors.Is(err, directory.ErrNotFound) {
			return nil, storeErr("get delivery address", err)
		}
	}

	if po.DeliveryContactID != nil {
		d.DeliveryContact, err = s.dir.GetContact(ctx, *po.DeliveryContactID)
		if err != nil && !errors.Is(err, directory.ErrNotFound) {
			return nil, storeErr("get delivery contact", err)
		}
	}

	return d, nil
}

func (s *Store) GetMetadata(ctx context.Context, poID uuid.UUID) (*purchaseorder.Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		m          purchaseorder.Metadata
		ref, cname sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, po_id, delivery_terms, delivery_date, test_certificates_required,
			supplier_reference_number, supplier_contact_name, active
		FROM po_metadata
		WHERE po_id = $1 AND active
		ORDER BY id
		LIMIT 1`, poID).
		Scan(&m.ID, &m.POID, &m.DeliveryTerms, &m.DeliveryDate, &m.TestCertificatesRequired, &ref, &cname, &m.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, purchaseorder.ErrNotFound
	}

	if err != nil {
		return nil, storeErr("get metadata", err)
	}

	m.SupplierReferenceNumber = stringPtr(ref)
	m.SupplierContactName = stringPtr(cname)

	return &m, nil
}

const selectLineItemColumns = `
	id, po_id, description, quantity, unit, unit_price, currency,
	qty_received, exped_expected_date, exped_completed_date, active
`

// ScanLineItem expects the column order of selectLineItemColumns.
func ScanLineItem(s scanner) (*purchaseorder.LineItem, error) {
	var (
		li       purchaseorder.LineItem
		received decimal.NullDecimal
	)

	if err := s.Scan(
		&li.ID, &li.POID, &li.Description, &li.Quantity, &li.Unit, &li.UnitPrice, &li.Currency,
		&received, &li.ExpectedDate, &li.CompletedDate, &li.Active,
	); err != nil {
		return nil, err
	}

	if received.Valid {
		li.QtyReceived = &received.Decimal
	}

	return &li, nil
}

func (s *Store) lineItems(ctx context.Context, poID uuid.UUID) ([]purchaseorder.LineItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT `+selectLineItemColumns+`
		FROM po_line_items
		WHERE po_id = $1 AND active
		ORDER BY position, id`, poID)
	if err != nil {
		return nil, storeErr("list line items", err)
	}
	defer rows.Close()

	var items []purchaseorder.LineItem

	for rows.Next() {
		li, err := ScanLineItem(rows)
		if err != nil {
			return nil, storeErr("scan line item", err)
		}

		items = append(items, *li)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate line items", err)
	}

	return items, nil
}

func (s *Store) ListPurchaseOrders(ctx context.Context, filter purchaseorder.ListFilter) ([]*purchaseorder.PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT ` + selectPOColumns + fromPO + ` WHERE po.active`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND po.status = $%d", argIdx)

		args = append(args, string(*filter.Status))
		argIdx++
	}

	if filter.ProjectID != nil {
		query += fmt.Sprintf(" AND po.project_id = $%d", argIdx)

		args = append(args, *filter.ProjectID)
		argIdx++
	}

	if filter.PONumber != nil {
		query += fmt.Sprintf(" AND po.po_number = $%d", argIdx)

		args = append(args, *filter.PONumber)
	}

	query += " ORDER BY po.po_number DESC"

	return s.queryPurchaseOrders(ctx, "list purchase orders", query, args...)
}

func (s *Store) ListRevisions(ctx context.Context, poNumber int64) ([]*purchaseorder.PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT ` + selectPOColumns + fromPO + ` WHERE po.po_number = $1 ORDER BY po.created_at ASC`

	return s.queryPurchaseOrders(ctx, "list revisions", query, poNumber)
}

func (s *Store) queryPurchaseOrders(ctx context.Context, op, query string, args ...any) ([]*purchaseorder.PurchaseOrder, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var pos []*purchaseorder.PurchaseOrder

	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}

		pos = append(pos, po)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}

	return pos, nil
}

func (s *Store) GetDeliveryContact(ctx context.Context, id uuid.UUID) (*directory.Contact, error) {
	return s.dir.GetContact(ctx, id)
}

func (s *Store) ListOrphanedPONumbers(ctx context.Context) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT po_number
		FROM purchase_orders
		GROUP BY po_number
		HAVING NOT bool_or(active)
		ORDER BY po_number`)
	if err != nil {
		return nil, storeErr("list orphaned purchase orders", err)
	}
	defer rows.Close()

	var numbers []int64

	for rows.Next() {
		var n int64
		if err := rows.Scan(&n); err != nil {
			return nil, storeErr("scan po number", err)
		}

		numbers = append(numbers, n)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate orphaned purchase orders", err)
	}

	return numbers, nil
}

// poNumberLockKey serialises po_number allocation across concurrent creates.
func poNumberLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("purchase_orders.po_number"))

	return int64(h.Sum64())
}

type snapshotTx struct {
	tx      *sql.Tx
	timeout time.Duration
}

func (s *Store) Begin(ctx context.Context) (purchaseorder.SnapshotTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr("begin", err)
	}

	return &snapshotTx{tx: dbTx, timeout: s.timeout}, nil
}

func (t *snapshotTx) Commit() error   { return t.tx.Commit() }
func (t *snapshotTx) Rollback() error { return t.tx.Rollback() }

func (t *snapshotTx) NextPONumber(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if _, err := t.tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", poNumberLockKey()); err != nil {
		return 0, storeErr("lock po numbers", err)
	}

	var next int64
	if err := t.tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(po_number), 0) + 1 FROM purchase_orders`).Scan(&next); err != nil {
		return 0, storeErr("next po number", err)
	}

	return next, nil
}

func (t *snapshotTx) CreateDeliveryContact(ctx context.Context, c *directory.Contact) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO delivery_contacts (name, email, phone, address_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.Name, c.Email, c.Phone, c.AddressID,
	).Scan(&c.ID)
	if err != nil {
		return storeErr("create delivery contact", err)
	}

	return nil
}

func (t *snapshotTx) SupersedePurchaseOrder(ctx context.Context, id uuid.UUID, expect purchaseorder.Precondition) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	res, err := t.tx.ExecContext(ctx, `
		UPDATE purchase_orders
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND active AND current_revision = $2 AND updated_at = $3`,
		id, expect.Revision, expect.UpdatedAt,
	)
	if err != nil {
		return storeErr("supersede purchase order", err)
	}

	return expectOneRow(res, "supersede purchase order")
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(op, err)
	}

	if n == 0 {
		return purchaseorder.ErrConflict
	}

	return nil
}

func (t *snapshotTx) DeactivateSatellites(ctx context.Context, poID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if _, err := t.tx.ExecContext(ctx, `UPDATE po_metadata SET active = FALSE WHERE po_id = $1 AND active`, poID); err != nil {
		return storeErr("deactivate metadata", err)
	}

	if _, err := t.tx.ExecContext(ctx, `UPDATE po_line_items SET active = FALSE WHERE po_id = $1 AND active`, poID); err != nil {
		return storeErr("deactivate line items", err)
	}

	return nil
}

func (t *snapshotTx) InsertPurchaseOrder(ctx context.Context, po *purchaseorder.PurchaseOrder) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO purchase_orders (
			po_number, project_id, supplier_id, delivery_address_id, manual_delivery_address,
			delivery_contact_id, status, current_revision, active, acc_complete, invoice_reference,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		po.PONumber, po.ProjectID, po.SupplierID, po.DeliveryAddressID, po.ManualDeliveryAddress,
		po.DeliveryContactID, string(po.Status), po.Revision, po.Active, po.AccComplete, po.InvoiceReference,
	).Scan(&po.ID, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: PO %s already has an active revision", purchaseorder.ErrConflict, po.DisplayNumber())
		}

		return storeErr("insert purchase order", err)
	}

	return nil
}

func (t *snapshotTx) InsertMetadata(ctx context.Context, meta *purchaseorder.Metadata) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO po_metadata (
			po_id, delivery_terms, delivery_date, test_certificates_required,
			supplier_reference_number, supplier_contact_name, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		meta.POID, meta.DeliveryTerms, meta.DeliveryDate, meta.TestCertificatesRequired,
		meta.SupplierReferenceNumber, meta.SupplierContactName, meta.Active,
	).Scan(&meta.ID)
	if err != nil {
		return storeErr("insert metadata", err)
	}

	return nil
}

func (t *snapshotTx) InsertLineItems(ctx context.Context, poID uuid.UUID, items []purchaseorder.LineItem) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return insertLineItems(ctx, t.tx, poID, items)
}

func insertLineItems(ctx context.Context, q queryer, poID uuid.UUID, items []purchaseorder.LineItem) error {
	query := `
		INSERT INTO po_line_items (
			po_id, description, quantity, unit, unit_price, currency,
			qty_received, exped_expected_date, exped_completed_date, position, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		RETURNING id
	`

	for i := range items {
		li := &items[i]

		var received decimal.NullDecimal
		if li.QtyReceived != nil {
			received = decimal.NewNullDecimal(*li.QtyReceived)
		}

		err := q.QueryRowContext(ctx, query,
			poID, li.Description, li.Quantity, li.Unit, li.UnitPrice, li.Currency,
			received, li.ExpectedDate, li.CompletedDate, i,
		).Scan(&li.ID)
		if err != nil {
			return storeErr("insert line item", err)
		}

		li.POID = poID
		li.Active = true
	}

	return nil
}

func (t *snapshotTx) PatchPurchaseOrder(ctx context.Context, po *purchaseorder.PurchaseOrder, expect purchaseorder.Precondition) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.tx.QueryRowContext(ctx, `
		UPDATE purchase_orders
		SET status = $1, current_revision = $2, project_id = $3, supplier_id = $4,
			delivery_address_id = $5, manual_delivery_address = $6, delivery_contact_id = $7,
			updated_at = NOW()
		WHERE id = $8 AND active AND current_revision = $9 AND updated_at = $10
		RETURNING updated_at`,
		string(po.Status), po.Revision, po.ProjectID, po.SupplierID,
		po.DeliveryAddressID, po.ManualDeliveryAddress, po.DeliveryContactID,
		po.ID, expect.Revision, expect.UpdatedAt,
	).Scan(&po.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return purchaseorder.ErrConflict
	}

	if err != nil {
		return storeErr("patch purchase order", err)
	}

	return nil
}

// PatchMetadata writes only the fields set on patch.
func (t *snapshotTx) PatchMetadata(ctx context.Context, poID uuid.UUID, patch purchaseorder.MetadataPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var (
		sets []string
		args []any
	)

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.DeliveryTerms != nil {
		set("delivery_terms", *patch.DeliveryTerms)
	}

	if patch.DeliveryDate != nil {
		set("delivery_date", *patch.DeliveryDate)
	}

	if patch.TestCertificatesRequired != nil {
		set("test_certificates_required", *patch.TestCertificatesRequired)
	}

	if patch.SupplierReferenceNumber != nil {
		set("supplier_reference_number", *patch.SupplierReferenceNumber)
	}

	if patch.SupplierContactName != nil {
		set("supplier_contact_name", *patch.SupplierContactName)
	}

	args = append(args, poID)
	query := fmt.Sprintf(`UPDATE po_metadata SET %s WHERE po_id = $%d AND active`, strings.Join(sets, ", "), len(args))

	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return storeErr("patch metadata", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("patch metadata", err)
	}

	if n == 0 {
		return purchaseorder.ErrNotFound
	}

	return nil
}

func (t *snapshotTx) ReplaceLineItems(ctx context.Context, poID uuid.UUID, items []purchaseorder.LineItem) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if _, err := t.tx.ExecContext(ctx, `DELETE FROM po_line_items WHERE po_id = $1`, poID); err != nil {
		return storeErr("delete line items", err)
	}

	return insertLineItems(ctx, t.tx, poID, items)
}

func (t *snapshotTx) ReactivateLatest(ctx context.Context, poNumber int64) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var id uuid.UUID

	err := t.tx.QueryRowContext(ctx, `
		SELECT id FROM purchase_orders
		WHERE po_number = $1
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`, poNumber).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, purchaseorder.ErrNotFound
	}

	if err != nil {
		return uuid.Nil, storeErr("find latest snapshot", err)
	}

	stmts := []struct {
		op    string
		query string
	}{
		{"reactivate purchase order", `UPDATE purchase_orders SET active = TRUE, updated_at = NOW() WHERE id = $1`},
		{"reactivate metadata", `UPDATE po_metadata SET active = TRUE WHERE po_id = $1`},
		{"reactivate line items", `UPDATE po_line_items SET active = TRUE WHERE po_id = $1`},
	}

	for _, st := range stmts {
		if _, err := t.tx.ExecContext(ctx, st.query, id); err != nil {
			return uuid.Nil, storeErr(st.op, err)
		}
	}

	return id, nil
}
