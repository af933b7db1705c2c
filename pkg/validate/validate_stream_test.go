package validate

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestValidateJSONLStream_Mixed(t *testing.T) {
	input := strings.Join([]string{
		`[{"id":1,"title":"a","price":1,"image":"","amount":1}]`,
		`[{"id":2,"amount":0}]`,
		"   ",
		`[{"id":3,"title":"c","price":2,"image":"","amount":4},{"id":4,"amount":2}]`,
		`[{"id":5,"amount":1}] trailing`,
	}, "\n")

	var out bytes.Buffer
	rep, err := ValidateJSONLStream(context.Background(), NewCartValidator(), strings.NewReader(input), &out)
	require.NoError(t, err)

	require.Equal(t, 2, rep.Valid)
	require.Equal(t, 2, rep.Invalid)
	require.Equal(t, 3, rep.Entries)
	require.Equal(t, 7, rep.Units)

	require.Len(t, rep.Issues, 2)
	require.Equal(t, 2, rep.Issues[0].Line)
	require.Equal(t, 5, rep.Issues[1].Line)
	require.ErrorIs(t, rep.Issues[0].Err, ErrInvalidCart)
	require.Contains(t, rep.Issues[1].String(), "line 5:")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.JSONEq(t, `[{"id":1,"title":"a","price":1,"image":"","amount":1}]`, lines[0])
	require.Equal(t, "2 valid / 2 invalid, 3 entries, 7 units", rep.Summary())
}

func TestValidateJSONLStream_WriteError(t *testing.T) {
	// bufio копит вывод до Flush, поэтому ошибка приходит в конце.
	_, err := ValidateJSONLStream(context.Background(), NewCartValidator(), strings.NewReader(`[]`), failingWriter{})
	require.ErrorContains(t, err, "disk full")
}

func TestValidateJSONLStream_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := ValidateJSONLStream(ctx, NewCartValidator(), strings.NewReader("[]\n[]\n"), &out)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, out.Len())
}
