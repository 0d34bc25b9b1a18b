// Package mailer prepares supplier emails for issued purchase orders.
package mailer

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

type Drafter interface {
	CreateDraft(ctx context.Context, d Draft) (*Message, error)
}

// Service creates at most one draft at a time per PO number; concurrent
// requests for the same PO share the in-flight result.
type Service struct {
	drafter   Drafter
	log       *logger.Logger
	group     singleflight.Group
	onFailure func()
}

type Option func(*Service)

func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithFailureHook(fn func()) Option {
	return func(s *Service) { s.onFailure = fn }
}

// NewService returns a Service. A nil drafter disables drafts.
func NewService(drafter Drafter, opts ...Option) *Service {
	s := &Service{drafter: drafter, log: logger.Nop(), onFailure: func() {}}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Enabled() bool {
	return s != nil && s.drafter != nil
}

func Subject(projectNumber string, po *purchaseorder.PurchaseOrder) string {
	if projectNumber == "" {
		projectNumber = "UNKNOWN-PROJECT"
	}

	return fmt.Sprintf("%s PO %s", projectNumber, po.DisplayNumber())
}

func Body(po *purchaseorder.PurchaseOrder) string {
	return fmt.Sprintf("Please find attached PO %s for previously quoted materials, "+
		"please confirm as soon as possible and notify of any late or unavailable items.\n\n"+
		"Best Regards,", po.DisplayNumber())
}

// DraftForPO creates an Outlook draft to the supplier with the PDF
// attached. Failures are logged and yield nil.
func (s *Service) DraftForPO(ctx context.Context, d *purchaseorder.Detail, filename string, pdf []byte) *Message {
	if !s.Enabled() || d == nil || d.PurchaseOrder == nil {
		return nil
	}

	po := d.PurchaseOrder
	ctx = s.log.WithField(ctx, "po_number", po.DisplayNumber())

	projectNumber := po.ProjectNumber
	if d.Project != nil {
		projectNumber = d.Project.Number
	}

	var to []string
	if d.Supplier != nil && d.Supplier.Email != "" {
		to = []string{d.Supplier.Email}
	}

	v, err, _ := s.group.Do(po.DisplayNumber(), func() (any, error) {
		msg, err := s.drafter.CreateDraft(ctx, Draft{
			Subject:    Subject(projectNumber, po),
			Body:       Body(po),
			To:         to,
			Attachment: &Attachment{Name: filename, Data: pdf},
		})
		if err != nil {
			s.onFailure()
			s.log.Error(ctx, "failed to create outlook draft", err)

			return nil, err
		}

		s.log.Info(s.log.WithFields(ctx, map[string]any{"subject": msg.Subject, "web_link": msg.WebLink}), "outlook draft created")

		return msg, nil
	})
	if err != nil {
		return nil
	}

	return v.(*Message)
}
