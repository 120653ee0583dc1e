package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// lastLine strips control bytes and returns the final printed line
func lastLine(d *Document) string {
	out := strings.TrimRight(string(d.Bytes()), "\n")
	if i := strings.LastIndexByte(out, '\n'); i >= 0 {
		out = out[i+1:]
	}
	return strings.TrimPrefix(out, string([]byte{ESC, '@'}))
}

func TestAmountLine(t *testing.T) {
	doc := NewDocument(32)
	doc.AmountLine("Subtotal:", 123450)

	line := lastLine(doc)
	assert.True(t, strings.HasPrefix(line, "Subtotal:"))
	assert.True(t, strings.HasSuffix(line, "1234.50"))
	assert.Len(t, line, 32)
}

func TestKeyValue_NeverCollapses(t *testing.T) {
	doc := NewDocument(10)
	doc.KeyValue("a long key here", "99999.00")

	assert.Equal(t, "a long key here 99999.00", lastLine(doc))
}
