package purchaseorder

import (
	"context"
	"fmt"
)

// Reconcile repairs every PO number left without an active snapshot by
// reactivating its most recent one. It returns how many were repaired.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	orphans, err := s.repo.ListOrphanedPONumbers(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing orphaned purchase orders: %w", err)
	}

	repaired := 0

	for _, number := range orphans {
		if err := s.reactivate(ctx, number); err != nil {
			return repaired, err
		}

		repaired++
	}

	return repaired, nil
}

func (s *Service) reactivate(ctx context.Context, number int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reconcile: %w", err)
	}
	defer tx.Rollback()

	id, err := tx.ReactivateLatest(ctx, number)
	if err != nil {
		return fmt.Errorf("reactivating PO %06d: %w", number, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reconcile: %w", err)
	}

	ctx = s.log.WithFields(ctx, map[string]any{"po_number": number, "po_id": id.String()})
	s.log.Warn(ctx, "reactivated orphaned purchase order", nil)

	return nil
}
