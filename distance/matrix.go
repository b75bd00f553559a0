// Package distance builds the all-pairs hop-count matrix between the
// valves that matter to the search.
package distance

import "fmt"

// Matrix is a dense N×N row-major table of shortest tunnel counts between
// points of interest. Entry (i,j) is the minimum number of tunnels walked
// from IDs[i] to IDs[j]. Opening a valve reached this way costs one more
// minute on top of the distance.
//
// A Matrix is immutable once returned by Build or FromRows.
type Matrix struct {
	n     int
	data  []int // length n*n, row-major
	ids   []string
	index map[string]int
	start int
}

// FromRows validates rows and wraps them in a Matrix. ids may be nil, in
// which case labels default to the decimal row index.
func FromRows(rows [][]int, ids []string, start int) (*Matrix, error) {
	if err := Validate(rows); err != nil {
		return nil, err
	}
	n := len(rows)
	if ids == nil {
		ids = make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprint(i)
		}
	}
	if len(ids) != n {
		return nil, fmt.Errorf("%w: %d ids for %d rows", ErrNonSquare, len(ids), n)
	}
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: start %d", ErrOutOfRange, start)
	}

	m := newMatrix(ids, start)
	for i, row := range rows {
		copy(m.data[i*n:(i+1)*n], row)
	}

	return m, nil
}

func newMatrix(ids []string, start int) *Matrix {
	n := len(ids)
	m := &Matrix{
		n:     n,
		data:  make([]int, n*n),
		ids:   make([]string, n),
		index: make(map[string]int, n),
		start: start,
	}
	copy(m.ids, ids)
	for i, id := range m.ids {
		m.index[id] = i
	}

	return m
}

// Size returns N, the number of points of interest.
func (m *Matrix) Size() int { return m.n }

// Start returns the dense id of the designated start valve.
func (m *Matrix) Start() int { return m.start }

// IDs returns a copy of the dense id → label table.
func (m *Matrix) IDs() []string {
	out := make([]string, m.n)
	copy(out, m.ids)

	return out
}

// ID returns the label of dense id i.
func (m *Matrix) ID(i int) (string, error) {
	if i < 0 || i >= m.n {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}

	return m.ids[i], nil
}

// Index returns the dense id of label.
func (m *Matrix) Index(label string) (int, error) {
	i, ok := m.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownID, label)
	}

	return i, nil
}

// At returns the distance from i to j.
func (m *Matrix) At(i, j int) (int, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, i, j)
	}

	return m.data[i*m.n+j], nil
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) ([]int, error) {
	if i < 0 || i >= m.n {
		return nil, fmt.Errorf("%w: row %d", ErrOutOfRange, i)
	}
	out := make([]int, m.n)
	copy(out, m.data[i*m.n:(i+1)*m.n])

	return out, nil
}

// Rows returns a deep copy of the matrix as [][]int.
func (m *Matrix) Rows() [][]int {
	out := make([][]int, m.n)
	for i := range out {
		out[i], _ = m.Row(i)
	}

	return out
}

// Validate checks the shape and values of an externally supplied matrix:
// non-empty, square, zero diagonal, no negative entries.
//
// Complexity: O(n²).
func Validate(rows [][]int) error {
	n := len(rows)
	if n == 0 {
		return ErrEmpty
	}
	for i, row := range rows {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrNonSquare, i, len(row), n)
		}
		for j, d := range row {
			if d < 0 {
				return fmt.Errorf("%w: (%d,%d)=%d", ErrNegativeDistance, i, j, d)
			}
			if i == j && d != 0 {
				return fmt.Errorf("%w: (%d,%d)=%d", ErrNonZeroDiagonal, i, i, d)
			}
		}
	}

	return nil
}
