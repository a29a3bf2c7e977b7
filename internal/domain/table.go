package domain

import "errors"

var (
	// ErrInvalidRowChoice is returned when a forced-choice answer names a
	// row index that does not exist on the table.
	ErrInvalidRowChoice = errors.New("row index out of range")
	// ErrNoTargetRow is returned when Place is called for a card that is
	// lower than every row's last card; the caller must obtain a row
	// choice from the card's owner and use PlaceForced instead.
	ErrNoTargetRow = errors.New("card is lower than every row")
)

// Table holds the game's rows and owns row selection and overflow handling.
type Table struct {
	rows []*Row
}

// NewTable builds a table with one row per starting card. Starting cards
// are expected in ascending order; each becomes the sole card of its row.
func NewTable(starting []Card, capacity int) *Table {
	rows := make([]*Row, len(starting))
	for i, c := range starting {
		rows[i] = NewRow(c, capacity)
	}
	return &Table{rows: rows}
}

// Rows returns the table's rows for inspection.
func (t *Table) Rows() []*Row {
	return t.rows
}

// RowCount returns the number of rows on the table.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// LastValues returns the last-card value of each row, indexed by row.
func (t *Table) LastValues() []int {
	out := make([]int, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.LastCard().Value
	}
	return out
}

// FindTargetRow returns the index of the row whose last card is closest
// below the given card. Row last-values are always distinct, so the choice
// is unambiguous. ok is false when the card is lower than every row.
func (t *Table) FindTargetRow(c Card) (index int, ok bool) {
	best := -1
	for i, r := range t.rows {
		if !r.CanPlace(c) {
			continue
		}
		if best == -1 || r.LastCard().Value > t.rows[best].LastCard().Value {
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// MustWipe reports whether placing this card requires the owner to choose
// a row to take.
func (t *Table) MustWipe(c Card) bool {
	_, ok := t.FindTargetRow(c)
	return !ok
}

// Place puts a card on its target row. The returned pile is non-empty only
// when the placement overflowed the row.
func (t *Table) Place(c Card) (rowIndex int, taken []Card, err error) {
	idx, ok := t.FindTargetRow(c)
	if !ok {
		return 0, nil, ErrNoTargetRow
	}
	taken, err = t.rows[idx].Place(c)
	if err != nil {
		return 0, nil, err
	}
	return idx, taken, nil
}

// PlaceForced answers a forced-choice event: the chosen row is emptied,
// its cards become the owner's penalty pile, and the card restarts the row.
func (t *Table) PlaceForced(c Card, rowIndex int) ([]Card, error) {
	if rowIndex < 0 || rowIndex >= len(t.rows) {
		return nil, ErrInvalidRowChoice
	}
	return t.rows[rowIndex].WipeAndReplace(c), nil
}

// CardCount returns the total number of cards on the table.
func (t *Table) CardCount() int {
	n := 0
	for _, r := range t.rows {
		n += r.Len()
	}
	return n
}
