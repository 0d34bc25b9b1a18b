package app

import (
	"context"
	"time"
)

// Reconcile repairs orphaned PO numbers once and records how many were
// reactivated.
func (a *App) Reconcile(ctx context.Context) (int, error) {
	n, err := a.PurchaseOrders.Reconcile(ctx)
	a.Metrics.AddReconciled(n)

	return n, err
}

// RunReconciler calls Reconcile every interval until ctx is done.
func (a *App) RunReconciler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.Reconcile(ctx)
			if err != nil {
				a.Log.Error(ctx, "reconcile failed", err)
				continue
			}

			if n > 0 {
				a.Log.Info(a.Log.WithField(ctx, "reactivated", n), "reconcile finished")
			}
		}
	}
}
