package toolkit

import (
	"fmt"
	"slices"
	"strings"
)

// TreeModel is the data source of a TreeView.
type TreeModel interface {
	NColumns() int
	NRows() int
	Value(row, column int) string
}

// SortType is the direction of a sorted model.
type SortType int

const (
	SortAscending SortType = iota
	SortDescending
)

// String returns "ascending" or "descending".
func (o SortType) String() string {
	if o == SortDescending {
		return "descending"
	}
	return "ascending"
}

// ParseSortType parses a sort direction name, case-insensitively.
func ParseSortType(s string) (SortType, error) {
	switch {
	case strings.EqualFold(s, "ascending"):
		return SortAscending, nil
	case strings.EqualFold(s, "descending"):
		return SortDescending, nil
	}
	return 0, fmt.Errorf("toolkit: unknown sort type %q", s)
}

// Sortable is the capability of keeping rows sorted by one column.
type Sortable interface {
	SetSortColumnID(column int, order SortType) error
	// SortColumnID returns the sort column and direction. ok is false
	// while unsorted.
	SortColumnID() (column int, order SortType, ok bool)
}

// ListStore is a flat TreeModel of string rows.
type ListStore struct {
	columns int
	rows    [][]string

	sortColumn int
	sortOrder  SortType
}

// NewListStore creates an empty, unsorted store with the given column count.
func NewListStore(columns int) *ListStore {
	return &ListStore{columns: columns, sortColumn: -1}
}

// Append adds a row. The value count must match the column count. A
// sorted store keeps the row in order.
func (s *ListStore) Append(values ...string) error {
	if len(values) != s.columns {
		return fmt.Errorf("%w: want %d, got %d", ErrColumnCount, s.columns, len(values))
	}
	s.rows = append(s.rows, append([]string(nil), values...))
	s.sort()
	return nil
}

// NColumns implements TreeModel.
func (s *ListStore) NColumns() int { return s.columns }

// NRows implements TreeModel.
func (s *ListStore) NRows() int { return len(s.rows) }

// Value implements TreeModel. Out-of-range cells are empty.
func (s *ListStore) Value(row, column int) string {
	if row < 0 || row >= len(s.rows) || column < 0 || column >= s.columns {
		return ""
	}
	return s.rows[row][column]
}

// SetSortColumnID implements Sortable. Cells compare as strings and rows
// with equal keys keep their relative order.
func (s *ListStore) SetSortColumnID(column int, order SortType) error {
	if column < 0 || column >= s.columns {
		return fmt.Errorf("%w: %d of %d", ErrNoColumn, column, s.columns)
	}
	s.sortColumn = column
	s.sortOrder = order
	s.sort()
	return nil
}

// SortColumnID implements Sortable.
func (s *ListStore) SortColumnID() (int, SortType, bool) {
	return s.sortColumn, s.sortOrder, s.sortColumn >= 0
}

func (s *ListStore) sort() {
	if s.sortColumn < 0 {
		return
	}
	col := s.sortColumn
	slices.SortStableFunc(s.rows, func(a, b []string) int {
		c := strings.Compare(a[col], b[col])
		if s.sortOrder == SortDescending {
			return -c
		}
		return c
	})
}

// TreeViewColumn shows one model column inside a TreeView.
type TreeViewColumn struct {
	Title      string
	TextColumn int
}

// NewTextColumn creates a column rendering model column text as strings.
func NewTextColumn(title string, text int) *TreeViewColumn {
	return &TreeViewColumn{Title: title, TextColumn: text}
}

// SelectionMode controls how many rows can be selected.
type SelectionMode int

const (
	SelectionNone SelectionMode = iota
	SelectionSingle
	SelectionBrowse
	SelectionMultiple
)

var selectionModeNames = []string{"none", "single", "browse", "multiple"}

// String returns the mode name.
func (m SelectionMode) String() string {
	if m < 0 || int(m) >= len(selectionModeNames) {
		return "unknown"
	}
	return selectionModeNames[m]
}

// ParseSelectionMode parses a mode name, case-insensitively.
func ParseSelectionMode(s string) (SelectionMode, error) {
	for i, name := range selectionModeNames {
		if strings.EqualFold(s, name) {
			return SelectionMode(i), nil
		}
	}
	return 0, fmt.Errorf("toolkit: unknown selection mode %q", s)
}

// TreeSelection tracks the selected rows of a TreeView.
type TreeSelection struct {
	ObjectBase

	mode     SelectionMode
	selected []int
}

func newTreeSelection() *TreeSelection {
	s := &TreeSelection{mode: SelectionSingle}
	s.InitObject(TreeSelectionType, s)
	return s
}

// SetMode sets the selection mode and drops selections it cannot hold.
func (s *TreeSelection) SetMode(mode SelectionMode) {
	s.mode = mode
	switch {
	case mode == SelectionNone:
		s.selected = nil
	case mode != SelectionMultiple && len(s.selected) > 1:
		s.selected = s.selected[:1]
	}
}

// Mode returns the selection mode.
func (s *TreeSelection) Mode() SelectionMode {
	return s.mode
}

// Select selects row and emits "changed".
func (s *TreeSelection) Select(row int) {
	switch s.mode {
	case SelectionNone:
		return
	case SelectionMultiple:
		for _, r := range s.selected {
			if r == row {
				return
			}
		}
		s.selected = append(s.selected, row)
	default:
		s.selected = []int{row}
	}
	s.Emit("changed")
}

// Selected returns the selected rows.
func (s *TreeSelection) Selected() []int {
	return append([]int(nil), s.selected...)
}

// TreeView displays a TreeModel in columns.
type TreeView struct {
	Container

	model            TreeModel
	headersVisible   bool
	headersClickable bool
	columns          []*TreeViewColumn
	selection        *TreeSelection
}

// NewTreeView creates an empty tree view with visible headers.
func NewTreeView() *TreeView {
	t := &TreeView{headersVisible: true, selection: newTreeSelection()}
	t.InitWidget(TreeViewType, t)
	return t
}

// SetModel sets the data source.
func (t *TreeView) SetModel(model TreeModel) {
	t.model = model
}

// Model returns the data source.
func (t *TreeView) Model() TreeModel {
	return t.model
}

// SetHeadersVisible sets whether column headers are shown.
func (t *TreeView) SetHeadersVisible(visible bool) {
	t.headersVisible = visible
}

// HeadersVisible reports whether column headers are shown.
func (t *TreeView) HeadersVisible() bool {
	return t.headersVisible
}

// SetHeadersClickable sets whether column headers respond to clicks.
func (t *TreeView) SetHeadersClickable(clickable bool) {
	t.headersClickable = clickable
}

// HeadersClickable reports whether column headers respond to clicks.
func (t *TreeView) HeadersClickable() bool {
	return t.headersClickable
}

// AppendColumn adds col at the end and returns the column count.
func (t *TreeView) AppendColumn(col *TreeViewColumn) int {
	t.columns = append(t.columns, col)
	return len(t.columns)
}

// InsertColumn inserts col at position; out-of-range positions append.
func (t *TreeView) InsertColumn(col *TreeViewColumn, position int) int {
	if position < 0 || position >= len(t.columns) {
		return t.AppendColumn(col)
	}
	t.columns = append(t.columns[:position], append([]*TreeViewColumn{col}, t.columns[position:]...)...)
	return len(t.columns)
}

// RemoveColumn removes col and returns the column count.
func (t *TreeView) RemoveColumn(col *TreeViewColumn) int {
	for i, c := range t.columns {
		if c == col {
			t.columns = append(t.columns[:i], t.columns[i+1:]...)
			break
		}
	}
	return len(t.columns)
}

// Columns returns the columns in display order.
func (t *TreeView) Columns() []*TreeViewColumn {
	return append([]*TreeViewColumn(nil), t.columns...)
}

// SetSortColumnID implements Sortable by sorting the model.
func (t *TreeView) SetSortColumnID(column int, order SortType) error {
	m, ok := t.model.(Sortable)
	if !ok {
		return ErrNotSortable
	}
	return m.SetSortColumnID(column, order)
}

// SortColumnID implements Sortable.
func (t *TreeView) SortColumnID() (int, SortType, bool) {
	m, ok := t.model.(Sortable)
	if !ok {
		return -1, SortAscending, false
	}
	return m.SortColumnID()
}

// Selection returns the selection object.
func (t *TreeView) Selection() *TreeSelection {
	return t.selection
}
