package ui

// Column maps a row to one rendered cell.
type Column[T any] struct {
	Header string
	Cell   func(T) Cell
}

type Cell struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip,omitempty"`
	Badge   *Style `json:"badge,omitempty"`
}

// Text is a plain cell that repeats its content as a hover tooltip.
func Text(s string) Cell {
	if s == "" {
		return Cell{Text: "-"}
	}
	return Cell{Text: s, Tooltip: s}
}

func Badge(label string, style Style) Cell {
	return Cell{Text: label, Badge: &style}
}

type Row struct {
	ID    string `json:"id"`
	Link  string `json:"link"`
	Cells []Cell `json:"cells"`
}

type Table struct {
	Headers      []string `json:"headers"`
	Rows         []Row    `json:"rows"`
	Empty        bool     `json:"empty"`
	EmptyMessage string   `json:"emptyMessage,omitempty"`
}

// BuildTable renders rows through the column definitions. An empty input
// yields an explicit empty-state row rather than a blank table.
func BuildTable[T any](rows []T, cols []Column[T], id func(T) string, link func(T) string, emptyMessage string) Table {
	t := Table{Headers: make([]string, len(cols)), Rows: make([]Row, 0, len(rows))}
	for i, c := range cols {
		t.Headers[i] = c.Header
	}
	for _, r := range rows {
		row := Row{ID: id(r), Link: link(r), Cells: make([]Cell, len(cols))}
		for i, c := range cols {
			row.Cells[i] = c.Cell(r)
		}
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) == 0 {
		t.Empty = true
		t.EmptyMessage = emptyMessage
	}
	return t
}
