package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/money"
)

var ErrInvalidRange = errors.New("report range ends before it starts")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	ListSpendLines(ctx context.Context, filter Filter) ([]Line, error)
}

type Service struct {
	repo     Repository
	currency string
}

func NewService(repo Repository, currency string) *Service {
	return &Service{repo: repo, currency: currency}
}

func (s *Service) Spend(ctx context.Context, filter Filter) (Spend, error) {
	filter.ProjectNumber = strings.TrimSpace(filter.ProjectNumber)

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return Spend{}, ErrInvalidRange
	}

	lines, err := s.repo.ListSpendLines(ctx, filter)
	if err != nil {
		return Spend{}, fmt.Errorf("listing spend lines: %w", err)
	}

	return Summarize(lines), nil
}

// WriteCSV writes one aggregation with a header row and a closing total.
func WriteCSV(w io.Writer, heading string, totals []Total) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{heading, "POs", "Net"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	count := 0
	net := decimal.Zero

	for _, t := range totals {
		if err := cw.Write([]string{t.Label, strconv.Itoa(t.POCount), money.Plain(t.Net)}); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}

		count += t.POCount
		net = net.Add(t.Net)
	}

	if err := cw.Write([]string{"Total", strconv.Itoa(count), money.Plain(net)}); err != nil {
		return fmt.Errorf("writing csv total: %w", err)
	}

	cw.Flush()

	return cw.Error()
}

// Summary is a short plain-text digest, e.g. for pasting into an email.
func (s *Service) Summary(spend Spend) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d purchase orders, %s net\n", spend.POCount, money.Format(spend.Net, s.currency))

	for _, t := range spend.ByProject {
		fmt.Fprintf(&sb, "* %s | %d | %s\n", t.Label, t.POCount, money.Format(t.Net, s.currency))
	}

	return sb.String()
}
