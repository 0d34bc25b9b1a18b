package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is the net value of one active, non-cancelled purchase order.
type Line struct {
	POID          uuid.UUID
	PONumber      int64
	ProjectNumber string
	ProjectName   string
	SupplierName  string
	// RaisedAt is when the PO number was first created, not when its
	// current snapshot was written.
	RaisedAt time.Time
	Net      decimal.Decimal
}

type Filter struct {
	From          *time.Time
	To            *time.Time
	ProjectNumber string
}

// Total is one row of an aggregated spend report.
type Total struct {
	Key     string
	Label   string
	POCount int
	Net     decimal.Decimal
}

// Spend holds the three aggregations of the same set of lines.
type Spend struct {
	ByProject  []Total
	BySupplier []Total
	ByMonth    []Total
	Net        decimal.Decimal
	POCount    int
}

func aggregate(lines []Line, key func(Line) (string, string)) []Total {
	idx := make(map[string]int)

	var totals []Total

	for _, l := range lines {
		k, label := key(l)

		i, ok := idx[k]
		if !ok {
			i = len(totals)
			idx[k] = i
			totals = append(totals, Total{Key: k, Label: label})
		}

		totals[i].POCount++
		totals[i].Net = totals[i].Net.Add(l.Net)
	}

	return totals
}

func byNetDesc(a, b Total) int {
	if c := b.Net.Cmp(a.Net); c != 0 {
		return c
	}

	return cmp.Compare(a.Key, b.Key)
}

// Summarize aggregates lines per project, per supplier and per month.
// Projects and suppliers are ordered by spend, months chronologically.
func Summarize(lines []Line) Spend {
	s := Spend{POCount: len(lines)}

	for _, l := range lines {
		s.Net = s.Net.Add(l.Net)
	}

	s.ByProject = aggregate(lines, func(l Line) (string, string) {
		if l.ProjectName == "" {
			return l.ProjectNumber, l.ProjectNumber
		}

		return l.ProjectNumber, l.ProjectNumber + " - " + l.ProjectName
	})
	slices.SortFunc(s.ByProject, byNetDesc)

	s.BySupplier = aggregate(lines, func(l Line) (string, string) {
		return l.SupplierName, l.SupplierName
	})
	slices.SortFunc(s.BySupplier, byNetDesc)

	s.ByMonth = aggregate(lines, func(l Line) (string, string) {
		return l.RaisedAt.Format("2006-01"), l.RaisedAt.Format("Jan 2006")
	})
	slices.SortFunc(s.ByMonth, func(a, b Total) int { return cmp.Compare(a.Key, b.Key) })

	return s
}

// Section is one aggregation written out as its own CSV file.
type Section struct {
	Key      string
	Filename string
	Heading  string
	Totals   func(Spend) []Total
}

// Sections lists every aggregation in download order.
var Sections = []Section{
	{"project", "spend_by_project.csv", "Project", func(s Spend) []Total { return s.ByProject }},
	{"supplier", "spend_by_supplier.csv", "Supplier", func(s Spend) []Total { return s.BySupplier }},
	{"month", "spend_by_month.csv", "Month", func(s Spend) []Total { return s.ByMonth }},
}

func SectionFor(key string) (Section, bool) {
	for _, sec := range Sections {
		if sec.Key == key {
			return sec, true
		}
	}

	return Section{}, false
}
