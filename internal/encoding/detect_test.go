package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/poflow/internal/encoding"
)

func decodeAll(t *testing.T, in []byte) (string, string) {
	t.Helper()

	r, charset, err := encoding.Decode(bytes.NewReader(in))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestDecode_UTF8Passthrough(t *testing.T) {
	input := "Description,Unit Price\nCâble gland,£1.20\n"

	got, charset := decodeAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestDecode_Windows1252(t *testing.T) {
	// "Price £5" with the pound sign as 0xA3.
	got, charset := decodeAll(t, []byte{'P', 'r', 'i', 'c', 'e', ' ', 0xA3, '5', '\n'})
	assert.Equal(t, "Price £5\n", got)
	assert.NotEqual(t, encoding.UTF8, charset)
}

func TestDecode_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Description;Qty\n")...)

	got, charset := decodeAll(t, input)
	assert.Equal(t, "Description;Qty\n", got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestDecode_UTF16LE(t *testing.T) {
	input := []byte{0xFF, 0xFE, 'Q', 0, 't', 0, 'y', 0}

	got, charset := decodeAll(t, input)
	assert.Equal(t, "Qty", got)
	assert.Equal(t, encoding.UTF16LE, charset)
}

func TestDecode_RuneSplitAtSniffWindow(t *testing.T) {
	// Push a two-byte rune across the 4096-byte peek boundary.
	input := strings.Repeat("a", 4095) + "é\n"

	got, charset := decodeAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, charset)
}
