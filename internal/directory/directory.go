package directory

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("directory entry not found")

// SupplierType marks whether a supplier row is a vendor, a delivery
// address, or both.
type SupplierType string

const (
	TypeSupplier SupplierType = "supplier"
	TypeDelivery SupplierType = "delivery"
	TypeBoth     SupplierType = "both"
)

type Project struct {
	ID     uuid.UUID
	Number string
	Name   string
}

// SortProjects orders projects newest first: numeric project numbers
// descending by value, then any non-numeric ones descending as text.
func SortProjects(projects []Project) {
	slices.SortStableFunc(projects, func(a, b Project) int {
		an, aErr := strconv.ParseInt(strings.TrimSpace(a.Number), 10, 64)
		bn, bErr := strconv.ParseInt(strings.TrimSpace(b.Number), 10, 64)

		switch {
		case aErr == nil && bErr == nil:
			return cmp.Compare(bn, an)
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		}

		return cmp.Compare(b.Number, a.Number)
	})
}

// Label is the dropdown text for a project.
func (p Project) Label() string {
	if p.Name == "" {
		return p.Number
	}

	return fmt.Sprintf("%s - %s", p.Number, p.Name)
}

// Supplier is a vendor or a delivery address. Both live in the same table.
type Supplier struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Type         SupplierType
	AddressLine1 string
	AddressLine2 string
	City         string
	Postcode     string
}

// AddressLines returns the non-empty postal lines in print order.
func (s Supplier) AddressLines() []string {
	var lines []string

	for _, l := range []string{s.AddressLine1, s.AddressLine2, s.City, s.Postcode} {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	return lines
}

// Contact is a named person at a delivery address.
type Contact struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	AddressID uuid.UUID
}
