package purchaseorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/poflow/internal/directory"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purchaseorder
type Repository interface {
	GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	GetMetadata(ctx context.Context, poID uuid.UUID) (*Metadata, error)
	ListPurchaseOrders(ctx context.Context, filter ListFilter) ([]*PurchaseOrder, error)
	ListRevisions(ctx context.Context, poNumber int64) ([]*PurchaseOrder, error)
	GetDeliveryContact(ctx context.Context, id uuid.UUID) (*directory.Contact, error)
	ListOrphanedPONumbers(ctx context.Context) ([]int64, error)

	Begin(ctx context.Context) (SnapshotTx, error)
}

// SnapshotTx groups the writes of a single save so they commit or roll
// back together.
type SnapshotTx interface {
	NextPONumber(ctx context.Context) (int64, error)
	CreateDeliveryContact(ctx context.Context, c *directory.Contact) error

	// SupersedePurchaseOrder deactivates the row only if it still matches
	// expect, and returns ErrConflict otherwise.
	SupersedePurchaseOrder(ctx context.Context, id uuid.UUID, expect Precondition) error
	DeactivateSatellites(ctx context.Context, poID uuid.UUID) error
	InsertPurchaseOrder(ctx context.Context, po *PurchaseOrder) error
	InsertMetadata(ctx context.Context, meta *Metadata) error
	InsertLineItems(ctx context.Context, poID uuid.UUID, items []LineItem) error

	// PatchPurchaseOrder updates the row in place under the same
	// precondition as SupersedePurchaseOrder.
	PatchPurchaseOrder(ctx context.Context, po *PurchaseOrder, expect Precondition) error
	// PatchMetadata returns ErrNotFound when the PO has no active metadata.
	PatchMetadata(ctx context.Context, poID uuid.UUID, patch MetadataPatch) error
	ReplaceLineItems(ctx context.Context, poID uuid.UUID, items []LineItem) error

	ReactivateLatest(ctx context.Context, poNumber int64) (uuid.UUID, error)

	Commit() error
	Rollback() error
}

type Service struct {
	repo     Repository
	log      *logger.Logger
	recorder Recorder
}

type Option func(*Service)

func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		log:      logger.Nop(),
		recorder: nopRecorder{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateRequest struct {
	ProjectID  uuid.UUID
	SupplierID uuid.UUID
	Delivery   DeliveryInput
	Metadata   MetadataPatch
	LineItems  []LineItem
}

// SaveRequest is an edit of an existing snapshot. Nil identity fields and
// an empty Delivery keep the current values.
type SaveRequest struct {
	ID         uuid.UUID
	Status     string
	Bump       bool
	ProjectID  *uuid.UUID
	SupplierID *uuid.UUID
	Delivery   DeliveryInput
	Metadata   MetadataPatch
	LineItems  []LineItem
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (po *PurchaseOrder, err error) {
	start := time.Now()
	defer func() { s.recorder.ObserveSave(PathCreate, Outcome(err), time.Since(start)) }()

	if req.ProjectID == uuid.Nil {
		return nil, validationError("project is required")
	}

	if req.SupplierID == uuid.Nil {
		return nil, validationError("supplier is required")
	}

	resolved, contact, err := s.resolveDelivery(ctx, delivery{}, req.Delivery)
	if err != nil {
		return nil, err
	}

	meta := req.Metadata.Apply(Metadata{})

	items, err := NormalizeLineItems(meta, req.LineItems)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback()

	number, err := tx.NextPONumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocating po number: %w", err)
	}

	if contact != nil {
		if err := tx.CreateDeliveryContact(ctx, contact); err != nil {
			return nil, fmt.Errorf("creating delivery contact: %w", err)
		}

		resolved.ContactID = &contact.ID
	}

	po = &PurchaseOrder{
		PONumber:              number,
		ProjectID:             req.ProjectID,
		SupplierID:            req.SupplierID,
		DeliveryAddressID:     resolved.AddressID,
		ManualDeliveryAddress: resolved.ManualAddress,
		DeliveryContactID:     resolved.ContactID,
		Status:                StatusDraft,
		Revision:              InitialRevision,
		Active:                true,
	}

	if err := s.insertSnapshot(ctx, tx, po, meta, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	s.logSaved(ctx, po, PathCreate)

	return po, nil
}

// Save applies an edit under the status lattice and revision policy and
// returns the id of the row to display next: a new snapshot id, or the
// original id when the row was patched in place.
func (s *Service) Save(ctx context.Context, req SaveRequest) (id uuid.UUID, err error) {
	start := time.Now()
	path := PathNone

	defer func() { s.recorder.ObserveSave(path, Outcome(err), time.Since(start)) }()

	current, err := s.repo.GetPurchaseOrder(ctx, req.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("loading purchase order: %w", err)
	}

	if !current.Active {
		return uuid.Nil, fmt.Errorf("%w: PO %s has a newer revision, reload and try again", ErrConflict, current.DisplayNumber())
	}

	// Terminal POs are locked whatever status was requested.
	if current.Status.IsTerminal() {
		return uuid.Nil, fmt.Errorf("%w: PO %s is %s", ErrLocked, current.DisplayNumber(), current.Status)
	}

	newStatus, err := ParseStatus(req.Status)
	if err != nil {
		return uuid.Nil, err
	}

	if err := CheckTransition(current.Status, newStatus); err != nil {
		return uuid.Nil, err
	}

	resolved, contact, err := s.resolveDelivery(ctx, deliveryOf(current), req.Delivery)
	if err != nil {
		return uuid.Nil, err
	}

	decision, err := DecideRevision(current.Revision, current.Status, newStatus, req.Bump)
	if err != nil {
		return uuid.Nil, err
	}

	meta, err := s.currentMetadata(ctx, current.ID)
	if err != nil {
		return uuid.Nil, err
	}

	merged := req.Metadata.Apply(meta)

	items, err := NormalizeLineItems(merged, req.LineItems)
	if err != nil {
		return uuid.Nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if contact != nil {
		if err := tx.CreateDeliveryContact(ctx, contact); err != nil {
			return uuid.Nil, fmt.Errorf("creating delivery contact: %w", err)
		}

		resolved.ContactID = &contact.ID
	}

	next := *current
	next.Status = newStatus
	next.Revision = decision.Revision
	next.DeliveryAddressID = resolved.AddressID
	next.ManualDeliveryAddress = resolved.ManualAddress
	next.DeliveryContactID = resolved.ContactID

	if req.ProjectID != nil {
		next.ProjectID = *req.ProjectID
	}

	if req.SupplierID != nil {
		next.SupplierID = *req.SupplierID
	}

	if decision.NewSnapshot {
		path = PathSnapshot
		err = s.writeSnapshot(ctx, tx, current, &next, merged, items)
	} else {
		path = PathPatch
		err = s.writePatch(ctx, tx, current, &next, req.Metadata, merged, items)
	}

	if err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit save: %w", err)
	}

	s.logSaved(ctx, &next, path)

	return next.ID, nil
}

func (s *Service) writeSnapshot(ctx context.Context, tx SnapshotTx, current, next *PurchaseOrder, meta Metadata, items []LineItem) error {
	if err := tx.SupersedePurchaseOrder(ctx, current.ID, current.Precondition()); err != nil {
		return fmt.Errorf("superseding PO %s: %w", current.DisplayNumber(), err)
	}

	if err := tx.DeactivateSatellites(ctx, current.ID); err != nil {
		return fmt.Errorf("deactivating PO %s details: %w", current.DisplayNumber(), err)
	}

	next.ID = uuid.Nil
	next.Active = true

	return s.insertSnapshot(ctx, tx, next, meta, items)
}

func (s *Service) insertSnapshot(ctx context.Context, tx SnapshotTx, po *PurchaseOrder, meta Metadata, items []LineItem) error {
	if err := tx.InsertPurchaseOrder(ctx, po); err != nil {
		return fmt.Errorf("inserting PO %s: %w", po.DisplayNumber(), err)
	}

	meta.ID = uuid.Nil
	meta.POID = po.ID
	meta.Active = true

	if err := tx.InsertMetadata(ctx, &meta); err != nil {
		return fmt.Errorf("inserting PO %s metadata: %w", po.DisplayNumber(), err)
	}

	if err := tx.InsertLineItems(ctx, po.ID, items); err != nil {
		return fmt.Errorf("inserting PO %s line items: %w", po.DisplayNumber(), err)
	}

	return nil
}

func (s *Service) writePatch(
	ctx context.Context,
	tx SnapshotTx,
	current, next *PurchaseOrder,
	patch MetadataPatch,
	merged Metadata,
	items []LineItem,
) error {
	if err := tx.PatchPurchaseOrder(ctx, next, current.Precondition()); err != nil {
		return fmt.Errorf("patching PO %s: %w", current.DisplayNumber(), err)
	}

	if !patch.IsEmpty() {
		err := tx.PatchMetadata(ctx, current.ID, patch)

		switch {
		case errors.Is(err, ErrNotFound):
			merged.ID = uuid.Nil
			merged.POID = current.ID
			merged.Active = true

			if err := tx.InsertMetadata(ctx, &merged); err != nil {
				return fmt.Errorf("inserting PO %s metadata: %w", current.DisplayNumber(), err)
			}
		case err != nil:
			return fmt.Errorf("patching PO %s metadata: %w", current.DisplayNumber(), err)
		}
	}

	if err := tx.ReplaceLineItems(ctx, current.ID, items); err != nil {
		return fmt.Errorf("replacing PO %s line items: %w", current.DisplayNumber(), err)
	}

	return nil
}

func (s *Service) currentMetadata(ctx context.Context, poID uuid.UUID) (Metadata, error) {
	meta, err := s.repo.GetMetadata(ctx, poID)
	if errors.Is(err, ErrNotFound) {
		return Metadata{}, nil
	}

	if err != nil {
		return Metadata{}, fmt.Errorf("loading metadata: %w", err)
	}

	return *meta, nil
}

type delivery struct {
	AddressID     *uuid.UUID
	ManualAddress *string
	ContactID     *uuid.UUID
}

func deliveryOf(po *PurchaseOrder) delivery {
	return delivery{
		AddressID:     po.DeliveryAddressID,
		ManualAddress: po.ManualDeliveryAddress,
		ContactID:     po.DeliveryContactID,
	}
}

func (in DeliveryInput) isEmpty() bool {
	return in.AddressID == nil && in.ManualAddress == nil && in.ContactID == nil && in.ManualContact == nil
}

// resolveDelivery turns the submitted delivery section into stored fields.
// A manual contact is returned unsaved so it is created inside the same
// transaction as the PO write.
func (s *Service) resolveDelivery(ctx context.Context, current delivery, in DeliveryInput) (delivery, *directory.Contact, error) {
	if in.isEmpty() {
		return current, nil, nil
	}

	manualAddress := trimmedOrNil(in.ManualAddress)

	if in.ManualContact != nil {
		name := strings.TrimSpace(in.ManualContact.Name)
		if name == "" {
			return delivery{}, nil, validationError("delivery contact name is required")
		}

		if manualAddress != nil {
			return delivery{}, nil, validationError("a new delivery contact needs a saved delivery address, not a typed one")
		}

		addressID := in.ManualContact.AddressID
		if addressID == nil {
			addressID = in.AddressID
		}

		if addressID == nil {
			return delivery{}, nil, validationError("a new delivery contact needs a delivery address")
		}

		contact := &directory.Contact{
			Name:      name,
			Email:     strings.TrimSpace(in.ManualContact.Email),
			Phone:     strings.TrimSpace(in.ManualContact.Phone),
			AddressID: *addressID,
		}

		return delivery{AddressID: addressID}, contact, nil
	}

	if in.ContactID != nil {
		contact, err := s.repo.GetDeliveryContact(ctx, *in.ContactID)
		if errors.Is(err, directory.ErrNotFound) {
			return delivery{}, nil, validationError("delivery contact %s does not exist", *in.ContactID)
		}

		if err != nil {
			return delivery{}, nil, fmt.Errorf("loading delivery contact: %w", err)
		}

		addressID := contact.AddressID

		return delivery{AddressID: &addressID, ContactID: &contact.ID}, nil, nil
	}

	if in.AddressID != nil {
		return delivery{AddressID: in.AddressID}, nil, nil
	}

	return delivery{ManualAddress: manualAddress}, nil, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}

	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}

	return &t
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	return s.repo.GetDetail(ctx, id)
}

// List returns active snapshots only.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*PurchaseOrder, error) {
	return s.repo.ListPurchaseOrders(ctx, filter)
}

// History returns every snapshot of a PO, oldest first.
func (s *Service) History(ctx context.Context, poNumber int64) ([]*PurchaseOrder, error) {
	revs, err := s.repo.ListRevisions(ctx, poNumber)
	if err != nil {
		return nil, err
	}

	if len(revs) == 0 {
		return nil, ErrNotFound
	}

	return revs, nil
}

func (s *Service) MaxRevisions(ctx context.Context, poNumber int64) (MaxRevisions, error) {
	revs, err := s.History(ctx, poNumber)
	if err != nil {
		return MaxRevisions{}, err
	}

	return maxRevisions(revs), nil
}

func maxRevisions(revs []*PurchaseOrder) MaxRevisions {
	out := MaxRevisions{Alpha: InitialRevision, Numeric: "0"}
	maxNum := 0

	for _, po := range revs {
		r := strings.TrimSpace(po.Revision)

		if n, ok := parseNumericRevision(r); ok {
			if n > maxNum {
				maxNum = n
			}

			continue
		}

		if len(r) == 1 && r[0] >= 'a' && r[0] <= 'z' && r > out.Alpha {
			out.Alpha = r
		}
	}

	out.Numeric = fmt.Sprint(maxNum)

	return out
}

func (s *Service) logSaved(ctx context.Context, po *PurchaseOrder, path string) {
	ctx = s.log.WithFields(ctx, map[string]any{
		"po_id":     po.ID.String(),
		"po_number": po.PONumber,
		"revision":  po.Revision,
		"status":    string(po.Status),
		"path":      path,
	})

	s.log.Info(ctx, "purchase order saved")
}
