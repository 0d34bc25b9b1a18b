package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=directory
type Repository interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	GetProjectByNumber(ctx context.Context, number string) (*Project, error)
	ListSuppliers(ctx context.Context, types ...SupplierType) ([]Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error)
	ListContacts(ctx context.Context, addressID *uuid.UUID) ([]Contact, error)
	GetContact(ctx context.Context, id uuid.UUID) (*Contact, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Projects are ordered newest project number first.
func (s *Service) Projects(ctx context.Context) ([]Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *Service) Project(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *Service) ProjectByNumber(ctx context.Context, number string) (*Project, error) {
	return s.repo.GetProjectByNumber(ctx, number)
}

// Suppliers lists rows that can be ordered from.
func (s *Service) Suppliers(ctx context.Context) ([]Supplier, error) {
	return s.repo.ListSuppliers(ctx, TypeSupplier, TypeBoth)
}

// DeliveryAddresses lists rows that goods can be sent to.
func (s *Service) DeliveryAddresses(ctx context.Context) ([]Supplier, error) {
	return s.repo.ListSuppliers(ctx, TypeDelivery, TypeBoth)
}

func (s *Service) Supplier(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

// Contacts lists delivery contacts, optionally only those at addressID.
func (s *Service) Contacts(ctx context.Context, addressID *uuid.UUID) ([]Contact, error) {
	return s.repo.ListContacts(ctx, addressID)
}

func (s *Service) Contact(ctx context.Context, id uuid.UUID) (*Contact, error) {
	return s.repo.GetContact(ctx, id)
}

// FormOptions is every dropdown the purchase order form needs.
type FormOptions struct {
	Projects          []Project
	Suppliers         []Supplier
	DeliveryAddresses []Supplier
	Contacts          []Contact
}

// FormOptions loads all dropdowns concurrently.
func (s *Service) FormOptions(ctx context.Context) (*FormOptions, error) {
	var opts FormOptions

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		opts.Projects, err = s.repo.ListProjects(gctx)
		if err != nil {
			return fmt.Errorf("loading projects: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		opts.Suppliers, err = s.Suppliers(gctx)
		if err != nil {
			return fmt.Errorf("loading suppliers: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		opts.DeliveryAddresses, err = s.DeliveryAddresses(gctx)
		if err != nil {
			return fmt.Errorf("loading delivery addresses: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		opts.Contacts, err = s.repo.ListContacts(gctx, nil)
		if err != nil {
			return fmt.Errorf("loading delivery contacts: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &opts, nil
}
