package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/poflow/internal/directory"
)

type Store struct {
	db      *sql.DB
	timeout time.Duration
}

func New(db *sql.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

type scanner interface {
	Scan(dest ...any) error
}

const supplierColumns = `id, name, email, type, address_line1, address_line2, city, postcode`

func scanSupplier(s scanner) (*directory.Supplier, error) {
	var sup directory.Supplier

	var typ string

	if err := s.Scan(
		&sup.ID, &sup.Name, &sup.Email, &typ,
		&sup.AddressLine1, &sup.AddressLine2, &sup.City, &sup.Postcode,
	); err != nil {
		return nil, err
	}

	sup.Type = directory.SupplierType(typ)

	return &sup, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]directory.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_number, name
		FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []directory.Project

	for rows.Next() {
		var p directory.Project
		if err := rows.Scan(&p.ID, &p.Number, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}

		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	directory.SortProjects(projects)

	return projects, nil
}

func (s *Store) getProject(ctx context.Context, where string, arg any) (*directory.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var p directory.Project

	err := s.db.QueryRowContext(ctx, `SELECT id, project_number, name FROM projects WHERE `+where, arg).
		Scan(&p.ID, &p.Number, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, directory.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	return &p, nil
}

func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*directory.Project, error) {
	return s.getProject(ctx, "id = $1", id)
}

func (s *Store) GetProjectByNumber(ctx context.Context, number string) (*directory.Project, error) {
	return s.getProject(ctx, "project_number = $1", number)
}

func (s *Store) ListSuppliers(ctx context.Context, types ...directory.SupplierType) ([]directory.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT ` + supplierColumns + ` FROM suppliers`

	var args []any

	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}

		query += ` WHERE type = ANY($1)`

		args = append(args, names)
	}

	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []directory.Supplier

	for rows.Next() {
		sup, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}

		suppliers = append(suppliers, *sup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suppliers: %w", err)
	}

	return suppliers, nil
}

func (s *Store) GetSupplier(ctx context.Context, id uuid.UUID) (*directory.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sup, err := scanSupplier(s.db.QueryRowContext(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, directory.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting supplier: %w", err)
	}

	return sup, nil
}

func (s *Store) ListContacts(ctx context.Context, addressID *uuid.UUID) ([]directory.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT id, name, email, phone, address_id FROM delivery_contacts`

	var args []any

	if addressID != nil {
		query += ` WHERE address_id = $1`

		args = append(args, *addressID)
	}

	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing delivery contacts: %w", err)
	}
	defer rows.Close()

	var contacts []directory.Contact

	for rows.Next() {
		var c directory.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.AddressID); err != nil {
			return nil, fmt.Errorf("scanning delivery contact: %w", err)
		}

		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating delivery contacts: %w", err)
	}

	return contacts, nil
}

func (s *Store) GetContact(ctx context.Context, id uuid.UUID) (*directory.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var c directory.Contact

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address_id
		FROM delivery_contacts
		WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.AddressID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, directory.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting delivery contact: %w", err)
	}

	return &c, nil
}
