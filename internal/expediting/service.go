package expediting

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expediting
type Repository interface {
	CountActive(ctx context.Context, q Query) (int, error)
	ListActive(ctx context.Context, q Query, limit, offset int) ([]Row, error)
	ListLineItems(ctx context.Context, poID uuid.UUID) ([]LineItem, error)
	PatchLineItem(ctx context.Context, id uuid.UUID, patch LineItemPatch) (*LineItem, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Overview returns one page of active purchase orders. A page past the end
// is clamped to the last page.
func (s *Service) Overview(ctx context.Context, q Query) (Page, error) {
	q = q.Normalize()
	q.ProjectNumber = strings.TrimSpace(q.ProjectNumber)
	q.SupplierName = strings.TrimSpace(q.SupplierName)

	total, err := s.repo.CountActive(ctx, q)
	if err != nil {
		return Page{}, fmt.Errorf("counting active purchase orders: %w", err)
	}

	totalPages := max(1, (total+PageSize-1)/PageSize)
	q.Page = min(q.Page, totalPages)

	rows, err := s.repo.ListActive(ctx, q, PageSize, (q.Page-1)*PageSize)
	if err != nil {
		return Page{}, fmt.Errorf("listing active purchase orders: %w", err)
	}

	return newPage(rows, total, q.Page), nil
}

func (s *Service) LineItems(ctx context.Context, poID uuid.UUID) ([]LineItem, error) {
	items, err := s.repo.ListLineItems(ctx, poID)
	if err != nil {
		return nil, fmt.Errorf("listing line items for %s: %w", poID, err)
	}

	return items, nil
}

func (s *Service) PatchLineItem(ctx context.Context, id uuid.UUID, patch LineItemPatch) (*LineItem, error) {
	if patch.IsEmpty() {
		return nil, ErrNoChanges
	}

	if patch.QtyReceived != nil && patch.QtyReceived.IsNegative() {
		return nil, fmt.Errorf("%w: quantity received cannot be negative", ErrInvalid)
	}

	li, err := s.repo.PatchLineItem(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("patching line item %s: %w", id, err)
	}

	return li, nil
}
