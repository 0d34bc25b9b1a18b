package purchaseorder_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/poflow/internal/directory"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

func line(desc string, qty int64, price string) purchaseorder.LineItem {
	return purchaseorder.LineItem{
		Description: desc,
		Quantity:    decimal.NewFromInt(qty),
		Unit:        "ea",
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func newDraft(t *testing.T, svc *purchaseorder.Service) *purchaseorder.PurchaseOrder {
	t.Helper()

	terms := "Delivered, carriage paid"
	ref := "Q-7731"

	po, err := svc.Create(context.Background(), purchaseorder.CreateRequest{
		ProjectID:  uuid.New(),
		SupplierID: uuid.New(),
		Metadata: purchaseorder.MetadataPatch{
			DeliveryTerms:           &terms,
			SupplierReferenceNumber: &ref,
		},
		LineItems: []purchaseorder.LineItem{line("Steel plate 10mm", 4, "120.00")},
	})
	require.NoError(t, err)

	return po
}

func activeRows(state map[uuid.UUID]purchaseorder.PurchaseOrder, number int64) []purchaseorder.PurchaseOrder {
	var out []purchaseorder.PurchaseOrder

	for _, po := range state {
		if po.PONumber == number && po.Active {
			out = append(out, po)
		}
	}

	return out
}

func rowsFor(state map[uuid.UUID]purchaseorder.PurchaseOrder, number int64) int {
	n := 0

	for _, po := range state {
		if po.PONumber == number {
			n++
		}
	}

	return n
}

// Walks a PO through draft edits, approval, an in-place patch, a bump and
// completion, checking the stored rows after every step.
func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := purchaseorder.NewService(store)

	po := newDraft(t, svc)
	assert.Equal(t, purchaseorder.StatusDraft, po.Status)
	assert.Equal(t, "a", po.Revision)
	assert.Equal(t, int64(1), po.PONumber)

	id := po.ID

	// Three draft edits: a -> b -> c -> d, one new row each.
	for _, want := range []string{"b", "c", "d"} {
		next, err := svc.Save(ctx, purchaseorder.SaveRequest{
			ID:        id,
			Status:    "draft",
			LineItems: []purchaseorder.LineItem{line("Steel plate 10mm", 4, "120.00")},
		})
		require.NoError(t, err)
		require.NotEqual(t, id, next)

		got, err := store.GetPurchaseOrder(ctx, next)
		require.NoError(t, err)
		assert.Equal(t, want, got.Revision)

		id = next
	}

	state := store.snapshot()
	assert.Equal(t, 4, rowsFor(state.pos, po.PONumber))

	active := activeRows(state.pos, po.PONumber)
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0].ID)
	assert.Equal(t, "d", active[0].Revision)

	draftD := id

	// Approve: d -> 1, new row, d's satellites deactivated.
	approved, err := svc.Save(ctx, purchaseorder.SaveRequest{
		ID:        draftD,
		Status:    "approved",
		LineItems: []purchaseorder.LineItem{line("Steel plate 10mm", 5, "118.50")},
	})
	require.NoError(t, err)
	require.NotEqual(t, draftD, approved)

	got, err := store.GetPurchaseOrder(ctx, approved)
	require.NoError(t, err)
	assert.Equal(t, "1", got.Revision)
	assert.Equal(t, purchaseorder.StatusApproved, got.Status)
	assert.Equal(t, po.PONumber, got.PONumber)

	for _, m := range store.metadataFor(draftD) {
		assert.False(t, m.Active, "metadata of superseded snapshot")
	}

	for _, li := range store.lineItems(draftD, false) {
		assert.False(t, li.Active, "line item of superseded snapshot")
	}

	// Metadata is carried into the new snapshot.
	meta, err := store.GetMetadata(ctx, approved)
	require.NoError(t, err)
	assert.Equal(t, "Delivered, carriage paid", meta.DeliveryTerms)

	// Same status, no bump: patched in place.
	rowsBefore := rowsFor(store.snapshot().pos, po.PONumber)
	deletedBefore := store.snapshot().deleted

	contactName := "A. Foreman"
	patched, err := svc.Save(ctx, purchaseorder.SaveRequest{
		ID:     approved,
		Status: "approved",
		Metadata: purchaseorder.MetadataPatch{
			SupplierContactName: &contactName,
		},
		LineItems: []purchaseorder.LineItem{
			line("Steel plate 10mm", 5, "118.50"),
			line("Angle 50x50", 12, "9.80"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, approved, patched)

	state = store.snapshot()
	assert.Equal(t, rowsBefore, rowsFor(state.pos, po.PONumber))
	assert.Equal(t, "1", state.pos[approved].Revision)
	assert.Equal(t, deletedBefore+1, state.deleted)

	items := store.lineItems(approved, true)
	require.Len(t, items, 2)
	assert.Equal(t, "Steel plate 10mm", items[0].Description)
	assert.Equal(t, "Angle 50x50", items[1].Description)

	meta, err = store.GetMetadata(ctx, approved)
	require.NoError(t, err)
	require.NotNil(t, meta.SupplierContactName)
	assert.Equal(t, "A. Foreman", *meta.SupplierContactName)
	require.NotNil(t, meta.SupplierReferenceNumber, "unsubmitted fields are kept")
	assert.Equal(t, "Q-7731", *meta.SupplierReferenceNumber)

	// Bump: 1 -> 2, new row, old satellites deactivated.
	bumped, err := svc.Save(ctx, purchaseorder.SaveRequest{
		ID:        approved,
		Status:    "approved",
		Bump:      true,
		LineItems: items,
	})
	require.NoError(t, err)
	require.NotEqual(t, approved, bumped)

	state = store.snapshot()
	assert.Equal(t, "2", state.pos[bumped].Revision)
	assert.False(t, state.pos[approved].Active)
	assert.Empty(t, store.lineItems(approved, true))

	// Complete, then every further edit is locked.
	completed, err := svc.Save(ctx, purchaseorder.SaveRequest{ID: bumped, Status: "complete", LineItems: items})
	require.NoError(t, err)

	before := store.snapshot()

	for _, status := range []string{"complete", "cancelled", "issued", "draft"} {
		for _, bump := range []bool{false, true} {
			_, err := svc.Save(ctx, purchaseorder.SaveRequest{ID: completed, Status: status, Bump: bump, LineItems: items})
			assert.ErrorIs(t, err, purchaseorder.ErrLocked, "%s bump=%v", status, bump)
		}
	}

	assert.Equal(t, before, store.snapshot())

	history, err := svc.History(ctx, po.PONumber)
	require.NoError(t, err)

	var revs []string
	for _, h := range history {
		revs = append(revs, h.Revision)
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "1", "2", "3"}, revs)

	maxRevs, err := svc.MaxRevisions(ctx, po.PONumber)
	require.NoError(t, err)
	assert.Equal(t, purchaseorder.MaxRevisions{Alpha: "d", Numeric: "3"}, maxRevs)
}

func TestService_Save_StaleSnapshotConflicts(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := purchaseorder.NewService(store)

	po := newDraft(t, svc)

	_, err := svc.Save(ctx, purchaseorder.SaveRequest{ID: po.ID, Status: "draft"})
	require.NoError(t, err)

	// A second editor still holding the original row.
	_, err = svc.Save(ctx, purchaseorder.SaveRequest{ID: po.ID, Status: "draft"})
	assert.ErrorIs(t, err, purchaseorder.ErrConflict)
}

func TestService_Save_ConcurrentWriteConflicts(t *testing.T) {
	tests := []struct {
		name   string
		status string
		setup  func(t *testing.T, svc *purchaseorder.Service, id uuid.UUID) uuid.UUID
	}{
		{
			name:   "snapshot path",
			status: "draft",
			setup: func(_ *testing.T, _ *purchaseorder.Service, id uuid.UUID) uuid.UUID {
				return id
			},
		},
		{
			name:   "patch path",
			status: "approved",
			setup: func(t *testing.T, svc *purchaseorder.Service, id uuid.UUID) uuid.UUID {
				next, err := svc.Save(context.Background(), purchaseorder.SaveRequest{ID: id, Status: "approved"})
				require.NoError(t, err)

				return next
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newMemStore()
			svc := purchaseorder.NewService(store)

			id := tt.setup(t, svc, newDraft(t, svc).ID)
			before := store.snapshot()

			store.onBegin = func(s *memStore) { s.touch(id) }

			_, err := svc.Save(ctx, purchaseorder.SaveRequest{ID: id, Status: tt.status})
			require.ErrorIs(t, err, purchaseorder.ErrConflict)

			store.onBegin = nil
			after := store.snapshot()

			assert.Equal(t, len(before.pos), len(after.pos))
			assert.Equal(t, len(before.items), len(after.items))
			assert.True(t, after.pos[id].Active)
		})
	}
}

func TestService_Save_ManualContact(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := purchaseorder.NewService(store)

	po := newDraft(t, svc)
	site := uuid.New()

	next, err := svc.Save(ctx, purchaseorder.SaveRequest{
		ID:     po.ID,
		Status: "draft",
		Delivery: purchaseorder.DeliveryInput{
			AddressID:     &site,
			ManualContact: &purchaseorder.ManualContact{Name: " Site Gatehouse ", Phone: "01632 960000"},
		},
	})
	require.NoError(t, err)

	got, err := store.GetPurchaseOrder(ctx, next)
	require.NoError(t, err)
	require.NotNil(t, got.DeliveryContactID)
	require.NotNil(t, got.DeliveryAddressID)
	assert.Equal(t, site, *got.DeliveryAddressID)
	assert.Nil(t, got.ManualDeliveryAddress)

	contact, err := store.GetDeliveryContact(ctx, *got.DeliveryContactID)
	require.NoError(t, err)
	assert.Equal(t, "Site Gatehouse", contact.Name)
	assert.Equal(t, site, contact.AddressID)
}

func TestService_Save_ContactAlignsAddress(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := purchaseorder.NewService(store)

	po := newDraft(t, svc)

	contact := directory.Contact{ID: uuid.New(), Name: "Stores", AddressID: uuid.New()}
	store.addContact(contact)

	otherAddress := uuid.New()

	next, err := svc.Save(ctx, purchaseorder.SaveRequest{
		ID:     po.ID,
		Status: "draft",
		Delivery: purchaseorder.DeliveryInput{
			AddressID: &otherAddress,
			ContactID: &contact.ID,
		},
	})
	require.NoError(t, err)

	got, err := store.GetPurchaseOrder(ctx, next)
	require.NoError(t, err)
	require.NotNil(t, got.DeliveryAddressID)
	assert.Equal(t, contact.AddressID, *got.DeliveryAddressID)
	assert.Equal(t, contact.ID, *got.DeliveryContactID)
}

func TestService_Save_KeepsDeliveryWhenOmitted(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := purchaseorder.NewService(store)

	address := "Unit 4, Riverside Park"
	po, err := svc.Create(ctx, purchaseorder.CreateRequest{
		ProjectID:  uuid.New(),
		SupplierID: uuid.New(),
		Delivery:   purchaseorder.DeliveryInput{ManualAddress: &address},
	})
	require.NoError(t, err)

	next, err := svc.Save(ctx, purchaseorder.SaveRequest{ID: po.ID, Status: "approved"})
	require.NoError(t, err)

	got, err := store.GetPurchaseOrder(ctx, next)
	require.NoError(t, err)
	require.NotNil(t, got.ManualDeliveryAddress)
	assert.Equal(t, address, *got.ManualDeliveryAddress)
}

func TestService_Reconcile(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := purchaseorder.NewService(store)

	first := newDraft(t, svc)
	second := newDraft(t, svc)

	latest, err := svc.Save(ctx, purchaseorder.SaveRequest{
		ID:        second.ID,
		Status:    "draft",
		LineItems: []purchaseorder.LineItem{line("Gasket", 10, "1.20")},
	})
	require.NoError(t, err)

	// Simulate a save that deactivated the old snapshot and died before
	// the new one was visible.
	store.mu.Lock()
	row := store.state.pos[latest]
	row.Active = false
	store.state.pos[latest] = row

	for id, li := range store.state.items {
		if li.POID == latest {
			li.Active = false
			store.state.items[id] = li
		}
	}
	store.mu.Unlock()

	repaired, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	state := store.snapshot()

	active := activeRows(state.pos, second.PONumber)
	require.Len(t, active, 1)
	assert.Equal(t, latest, active[0].ID)
	assert.Len(t, store.lineItems(latest, true), 1)
	assert.Len(t, activeRows(state.pos, first.PONumber), 1)

	repaired, err = svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, repaired)
}

func TestService_Create_AllocatesSequentialNumbers(t *testing.T) {
	store := newMemStore()
	svc := purchaseorder.NewService(store)

	a := newDraft(t, svc)
	b := newDraft(t, svc)

	assert.Equal(t, a.PONumber+1, b.PONumber)
	assert.Equal(t, "000002", b.DisplayNumber())
	assert.WithinDuration(t, b.CreatedAt, b.UpdatedAt, time.Second)
}

func TestService_SaveKeepsLineItemOrder(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := purchaseorder.NewService(store)

	po := newDraft(t, svc)

	for _, status := range []string{"draft", "approved", "approved"} {
		id, err := svc.Save(ctx, purchaseorder.SaveRequest{
			ID:     po.ID,
			Status: status,
			LineItems: []purchaseorder.LineItem{
				line("Z-purlin 200", 10, "31.00"),
				line("Angle 50x50", 12, "9.80"),
				line("M12 bolts", 200, "0.40"),
			},
		})
		require.NoError(t, err)

		d, err := svc.Get(ctx, id)
		require.NoError(t, err)

		var got []string
		for _, li := range d.LineItems {
			got = append(got, li.Description)
		}

		assert.Equal(t, []string{"Z-purlin 200", "Angle 50x50", "M12 bolts"}, got, status)

		po = d.PurchaseOrder
	}
}
