package view

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/poflow/internal/report"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeframe_Range(t *testing.T) {
	now := time.Date(2025, time.February, 14, 16, 30, 0, 0, time.UTC)

	tests := []struct {
		tf        Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}{
		{TimeframeThisMonth, date(2025, 2, 1), date(2025, 2, 14)},
		{TimeframeLastMonth, date(2025, 1, 1), date(2025, 1, 31)},
		{TimeframeThisQuarter, date(2025, 1, 1), date(2025, 2, 14)},
		{TimeframeThisYear, date(2025, 1, 1), date(2025, 2, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			start, end := tt.tf.Range(now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestTimeframe_LastMonthInJanuary(t *testing.T) {
	start, end := TimeframeLastMonth.Range(date(2025, 1, 9))
	assert.Equal(t, date(2024, 12, 1), start)
	assert.Equal(t, date(2024, 12, 31), end)
}

func TestTimeframePicker_Select(t *testing.T) {
	p := NewTimeframePicker(TimeframeThisMonth)
	p.now = func() time.Time { return date(2025, 2, 14) }

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	require.NotNil(t, msg.From)
	require.NotNil(t, msg.To)
	assert.Equal(t, date(2025, 1, 1), *msg.From)
	assert.Equal(t, date(2025, 1, 31), *msg.To)
	assert.False(t, msg.All)
}

func TestTimeframePicker_CustomRejectsReversedRange(t *testing.T) {
	p := NewTimeframePicker(TimeframeCustom)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.IsSelecting())

	p.inputs[0].SetValue("2025-03-01")
	p.inputs[1].SetValue("2025-02-01")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Error(t, p.err)
}

func TestWriteSpendCSVs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	spend := report.Summarize([]report.Line{
		{PONumber: 1, ProjectNumber: "2417", SupplierName: "Acme Steel", RaisedAt: date(2025, 1, 3), Net: decimal.NewFromInt(100)},
	})

	files, err := writeSpendCSVs(dir, spend)
	require.NoError(t, err)
	require.Len(t, files, 3)

	data, err := os.ReadFile(filepath.Join(dir, "spend_by_supplier.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Supplier,POs,Net\nAcme Steel,1,100.00\nTotal,1,100.00\n", string(data))
}
