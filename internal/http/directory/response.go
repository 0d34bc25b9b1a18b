package directory

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/poflow/internal/directory"
)

type ProjectResponse struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"project_number"`
	Name   string    `json:"name"`
	Label  string    `json:"label"`
}

type SupplierResponse struct {
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email,omitempty"`
	Type         directory.SupplierType `json:"type"`
	AddressLine1 string                 `json:"address_line1,omitempty"`
	AddressLine2 string                 `json:"address_line2,omitempty"`
	City         string                 `json:"city,omitempty"`
	Postcode     string                 `json:"postcode,omitempty"`
}

type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	AddressID uuid.UUID `json:"address_id"`
}

func ToProject(p *directory.Project) *ProjectResponse {
	if p == nil {
		return nil
	}

	return &ProjectResponse{ID: p.ID, Number: p.Number, Name: p.Name, Label: p.Label()}
}

func ToSupplier(s *directory.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}

	return &SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		Type:         s.Type,
		AddressLine1: s.AddressLine1,
		AddressLine2: s.AddressLine2,
		City:         s.City,
		Postcode:     s.Postcode,
	}
}

func ToContact(c *directory.Contact) *ContactResponse {
	if c == nil {
		return nil
	}

	return &ContactResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, AddressID: c.AddressID}
}

func ToProjects(ps []directory.Project) []ProjectResponse {
	resp := make([]ProjectResponse, len(ps))
	for i := range ps {
		resp[i] = *ToProject(&ps[i])
	}

	return resp
}

func ToSuppliers(ss []directory.Supplier) []SupplierResponse {
	resp := make([]SupplierResponse, len(ss))
	for i := range ss {
		resp[i] = *ToSupplier(&ss[i])
	}

	return resp
}

func ToContacts(cs []directory.Contact) []ContactResponse {
	resp := make([]ContactResponse, len(cs))
	for i := range cs {
		resp[i] = *ToContact(&cs[i])
	}

	return resp
}
