package card

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// Row is an ordered group of fields displayed side by side. An empty row is
// legal and renders as spacing.
type Row []Field

// idLength is the number of hex characters kept from the content digest.
const idLength = 16

// encMode uses Core Deterministic Encoding so the same rows always hash to
// the same id.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("card: CBOR encoder initialization failed: " + err.Error())
	}
}

// Content is the immutable output of a Template: rows of fields stored as a
// flat arena with per-row index lists. Keys are assigned once, at
// construction.
type Content struct {
	id     string
	fields []Field
	rows   [][]int
}

// NewContent copies rows into a new Content and derives its id from the
// encoded fields.
func NewContent(rows ...Row) Content {
	c := Content{rows: make([][]int, len(rows))}
	encoded := make([]any, len(rows))
	for i, row := range rows {
		idx := make([]int, len(row))
		fields := make([]any, len(row))
		for j, f := range row {
			if f == nil {
				f = UnknownField{}
			}
			idx[j] = len(c.fields)
			c.fields = append(c.fields, f)
			fields[j] = EncodeField(f)
		}
		c.rows[i] = idx
		encoded[i] = fields
	}
	c.id = contentID(encoded)
	return c
}

func contentID(encoded []any) string {
	data, err := encMode.Marshal(encoded)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", encoded))
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])[:idLength]
}

// ID identifies the content by value: equal rows produce equal ids.
func (c Content) ID() string { return c.id }

// Len returns the number of rows.
func (c Content) Len() int { return len(c.rows) }

// Row returns a copy of row i.
func (c Content) Row(i int) Row {
	idx := c.rows[i]
	row := make(Row, len(idx))
	for j, k := range idx {
		row[j] = c.fields[k]
	}
	return row
}

// Rows returns a copy of every row in display order.
func (c Content) Rows() []Row {
	rows := make([]Row, len(c.rows))
	for i := range c.rows {
		rows[i] = c.Row(i)
	}
	return rows
}

// RowKey is the stable key of row i.
func (c Content) RowKey(i int) string {
	return fmt.Sprintf("%s/r%d", c.id, i)
}

// FieldKey is the stable key of field j in row i.
func (c Content) FieldKey(i, j int) string {
	return fmt.Sprintf("%s/r%d/f%d", c.id, i, j)
}

// Assemble renders c into one row fragment per Row, in order. Each field
// is wrapped in a keyed span; the span is empty when the field renders
// nothing.
func Assemble(c Content, r *Renderer) []Fragment {
	out := make([]Fragment, 0, len(c.rows))
	for i, idx := range c.rows {
		row := Fragment{Kind: FragmentRow, Key: c.RowKey(i), Class: "card-row"}
		for j, k := range idx {
			span := Fragment{Kind: FragmentSpan, Key: c.FieldKey(i, j)}
			if frag, ok := r.Render(c.fields[k]); ok {
				span.Children = []Fragment{frag}
			}
			row.Children = append(row.Children, span)
		}
		out = append(out, row)
	}
	return out
}
