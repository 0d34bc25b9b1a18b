package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=accounts
type Repository interface {
	ListEntries(ctx context.Context, filter Filter) ([]Entry, error)
	UpdateAccounts(ctx context.Context, poID uuid.UUID, update Update) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Overview lists active purchase orders, newest PO number first.
func (s *Service) Overview(ctx context.Context, filter Filter) ([]Entry, error) {
	filter.ProjectNumber = strings.TrimSpace(filter.ProjectNumber)

	return s.repo.ListEntries(ctx, filter)
}

// Update patches only the fields present on u. An empty invoice
// reference clears it.
func (s *Service) Update(ctx context.Context, poID uuid.UUID, u Update) error {
	if u.IsEmpty() {
		return ErrNoChanges
	}

	if u.InvoiceReference != nil {
		ref := strings.TrimSpace(*u.InvoiceReference)
		u.InvoiceReference = &ref
	}

	if err := s.repo.UpdateAccounts(ctx, poID, u); err != nil {
		return fmt.Errorf("updating accounts for %s: %w", poID, err)
	}

	return nil
}
