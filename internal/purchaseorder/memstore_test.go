package purchaseorder_test

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/poflow/internal/directory"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

// memState is one consistent copy of every table the service touches.
type memState struct {
	pos      map[uuid.UUID]purchaseorder.PurchaseOrder
	meta     map[uuid.UUID]purchaseorder.Metadata
	items    map[uuid.UUID]purchaseorder.LineItem
	contacts map[uuid.UUID]directory.Contact
	deleted  int

	// itemSeq records insertion order, the way the position column does.
	itemSeq map[uuid.UUID]int
	seq     int
}

func (s *memState) clone() *memState {
	c := &memState{
		pos:      make(map[uuid.UUID]purchaseorder.PurchaseOrder, len(s.pos)),
		meta:     make(map[uuid.UUID]purchaseorder.Metadata, len(s.meta)),
		items:    make(map[uuid.UUID]purchaseorder.LineItem, len(s.items)),
		contacts: make(map[uuid.UUID]directory.Contact, len(s.contacts)),
		deleted:  s.deleted,
		itemSeq:  make(map[uuid.UUID]int, len(s.itemSeq)),
		seq:      s.seq,
	}

	for k, v := range s.pos {
		c.pos[k] = v
	}

	for k, v := range s.meta {
		c.meta[k] = v
	}

	for k, v := range s.items {
		c.items[k] = v
	}

	for k, v := range s.contacts {
		c.contacts[k] = v
	}

	for k, v := range s.itemSeq {
		c.itemSeq[k] = v
	}

	return c
}

// memStore is a transactional in-memory Repository. Each transaction works
// on a private copy that replaces the shared state on commit.
type memStore struct {
	mu    sync.Mutex
	state *memState
	clock time.Time

	// onBegin runs before a transaction copies the state, simulating a
	// writer that lands between the service's read and its write.
	onBegin func(s *memStore)
}

func newMemStore() *memStore {
	return &memStore{
		state: &memState{
			pos:      map[uuid.UUID]purchaseorder.PurchaseOrder{},
			meta:     map[uuid.UUID]purchaseorder.Metadata{},
			items:    map[uuid.UUID]purchaseorder.LineItem{},
			contacts: map[uuid.UUID]directory.Contact{},
			itemSeq:  map[uuid.UUID]int{},
		},
		clock: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) snapshot() *memState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

func (s *memStore) touch(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	po := s.state.pos[id]
	po.UpdatedAt = s.tick()
	s.state.pos[id] = po
}

func (s *memStore) addContact(c directory.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.contacts[c.ID] = c
}

func (s *memStore) GetPurchaseOrder(_ context.Context, id uuid.UUID) (*purchaseorder.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	po, ok := s.state.pos[id]
	if !ok {
		return nil, purchaseorder.ErrNotFound
	}

	return &po, nil
}

func (s *memStore) GetDetail(ctx context.Context, id uuid.UUID) (*purchaseorder.Detail, error) {
	po, err := s.GetPurchaseOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &purchaseorder.Detail{PurchaseOrder: po}

	if m, err := s.GetMetadata(ctx, id); err == nil {
		d.Metadata = m
	}

	d.LineItems = s.lineItems(id, true)

	return d, nil
}

func (s *memStore) lineItems(poID uuid.UUID, activeOnly bool) []purchaseorder.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []purchaseorder.LineItem

	for _, li := range s.state.items {
		if li.POID == poID && (li.Active || !activeOnly) {
			out = append(out, li)
		}
	}

	slices.SortFunc(out, func(a, b purchaseorder.LineItem) int {
		return cmp.Compare(s.state.itemSeq[a.ID], s.state.itemSeq[b.ID])
	})

	return out
}

func (s *memStore) metadataFor(poID uuid.UUID) []purchaseorder.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []purchaseorder.Metadata

	for _, m := range s.state.meta {
		if m.POID == poID {
			out = append(out, m)
		}
	}

	return out
}

func (s *memStore) GetMetadata(_ context.Context, poID uuid.UUID) (*purchaseorder.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.state.meta {
		if m.POID == poID && m.Active {
			return &m, nil
		}
	}

	return nil, purchaseorder.ErrNotFound
}

func (s *memStore) ListPurchaseOrders(_ context.Context, filter purchaseorder.ListFilter) ([]*purchaseorder.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*purchaseorder.PurchaseOrder

	for _, po := range s.state.pos {
		if !po.Active {
			continue
		}

		if filter.Status != nil && po.Status != *filter.Status {
			continue
		}

		out = append(out, &po)
	}

	slices.SortFunc(out, func(a, b *purchaseorder.PurchaseOrder) int { return int(b.PONumber - a.PONumber) })

	return out, nil
}

func (s *memStore) ListRevisions(_ context.Context, poNumber int64) ([]*purchaseorder.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*purchaseorder.PurchaseOrder

	for _, po := range s.state.pos {
		if po.PONumber == poNumber {
			out = append(out, &po)
		}
	}

	slices.SortFunc(out, func(a, b *purchaseorder.PurchaseOrder) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return out, nil
}

func (s *memStore) GetDeliveryContact(_ context.Context, id uuid.UUID) (*directory.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.state.contacts[id]
	if !ok {
		return nil, directory.ErrNotFound
	}

	return &c, nil
}

func (s *memStore) ListOrphanedPONumbers(_ context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[int64]bool{}

	for _, po := range s.state.pos {
		seen[po.PONumber] = seen[po.PONumber] || po.Active
	}

	var out []int64

	for n, active := range seen {
		if !active {
			out = append(out, n)
		}
	}

	slices.Sort(out)

	return out, nil
}

func (s *memStore) Begin(_ context.Context) (purchaseorder.SnapshotTx, error) {
	if s.onBegin != nil {
		s.onBegin(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return &memTx{store: s, state: s.state.clone()}, nil
}

type memTx struct {
	store *memStore
	state *memState
	done  bool
}

var errTxDone = errors.New("transaction already finished")

func (t *memTx) now() time.Time {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	return t.store.tick()
}

func (t *memTx) NextPONumber(_ context.Context) (int64, error) {
	var highest int64

	for _, po := range t.state.pos {
		highest = max(highest, po.PONumber)
	}

	return highest + 1, nil
}

func (t *memTx) CreateDeliveryContact(_ context.Context, c *directory.Contact) error {
	c.ID = uuid.New()
	t.state.contacts[c.ID] = *c

	return nil
}

func (t *memTx) SupersedePurchaseOrder(_ context.Context, id uuid.UUID, expect purchaseorder.Precondition) error {
	po, ok := t.state.pos[id]
	if !ok || !po.Active || po.Revision != expect.Revision || !po.UpdatedAt.Equal(expect.UpdatedAt) {
		return purchaseorder.ErrConflict
	}

	po.Active = false
	po.UpdatedAt = t.now()
	t.state.pos[id] = po

	return nil
}

func (t *memTx) DeactivateSatellites(_ context.Context, poID uuid.UUID) error {
	for id, m := range t.state.meta {
		if m.POID == poID {
			m.Active = false
			t.state.meta[id] = m
		}
	}

	for id, li := range t.state.items {
		if li.POID == poID {
			li.Active = false
			t.state.items[id] = li
		}
	}

	return nil
}

func (t *memTx) InsertPurchaseOrder(_ context.Context, po *purchaseorder.PurchaseOrder) error {
	for _, other := range t.state.pos {
		if other.Active && po.Active && other.PONumber == po.PONumber {
			return errors.New("duplicate active po_number")
		}
	}

	po.ID = uuid.New()
	po.CreatedAt = t.now()
	po.UpdatedAt = po.CreatedAt
	t.state.pos[po.ID] = *po

	return nil
}

func (t *memTx) InsertMetadata(_ context.Context, meta *purchaseorder.Metadata) error {
	meta.ID = uuid.New()
	t.state.meta[meta.ID] = *meta

	return nil
}

func (t *memTx) InsertLineItems(_ context.Context, poID uuid.UUID, items []purchaseorder.LineItem) error {
	for i := range items {
		items[i].ID = uuid.New()
		items[i].POID = poID
		items[i].Active = true
		t.state.items[items[i].ID] = items[i]
		t.state.seq++
		t.state.itemSeq[items[i].ID] = t.state.seq
	}

	return nil
}

func (t *memTx) PatchPurchaseOrder(_ context.Context, po *purchaseorder.PurchaseOrder, expect purchaseorder.Precondition) error {
	row, ok := t.state.pos[po.ID]
	if !ok || !row.Active || row.Revision != expect.Revision || !row.UpdatedAt.Equal(expect.UpdatedAt) {
		return purchaseorder.ErrConflict
	}

	row.Status = po.Status
	row.Revision = po.Revision
	row.ProjectID = po.ProjectID
	row.SupplierID = po.SupplierID
	row.DeliveryAddressID = po.DeliveryAddressID
	row.ManualDeliveryAddress = po.ManualDeliveryAddress
	row.DeliveryContactID = po.DeliveryContactID
	row.UpdatedAt = t.now()
	t.state.pos[po.ID] = row
	po.UpdatedAt = row.UpdatedAt

	return nil
}

func (t *memTx) PatchMetadata(_ context.Context, poID uuid.UUID, patch purchaseorder.MetadataPatch) error {
	for id, m := range t.state.meta {
		if m.POID == poID && m.Active {
			t.state.meta[id] = patch.Apply(m)
			return nil
		}
	}

	return purchaseorder.ErrNotFound
}

func (t *memTx) ReplaceLineItems(ctx context.Context, poID uuid.UUID, items []purchaseorder.LineItem) error {
	for id, li := range t.state.items {
		if li.POID == poID {
			delete(t.state.items, id)
			t.state.deleted++
		}
	}

	return t.InsertLineItems(ctx, poID, items)
}

func (t *memTx) ReactivateLatest(_ context.Context, poNumber int64) (uuid.UUID, error) {
	var latest *purchaseorder.PurchaseOrder

	for _, po := range t.state.pos {
		if po.PONumber != poNumber {
			continue
		}

		if latest == nil || po.CreatedAt.After(latest.CreatedAt) {
			latest = &po
		}
	}

	if latest == nil {
		return uuid.Nil, purchaseorder.ErrNotFound
	}

	latest.Active = true
	t.state.pos[latest.ID] = *latest

	for id, m := range t.state.meta {
		if m.POID == latest.ID {
			m.Active = true
			t.state.meta[id] = m
		}
	}

	for id, li := range t.state.items {
		if li.POID == latest.ID {
			li.Active = true
			t.state.items[id] = li
		}
	}

	return latest.ID, nil
}

func (t *memTx) Commit() error {
	if t.done {
		return errTxDone
	}

	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.state = t.state

	return nil
}

func (t *memTx) Rollback() error {
	t.done = true
	return nil
}
