// Package dataset provides ordered observation tables for the ridge
// estimator: rows of named numeric covariates with a stable column order,
// strict validation, and design-matrix assembly. Categorical values are
// converted through an explicit caller-owned Encoding table; the package
// never invents an encoding on its own.
package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ridgereg/core/parallel"
	"github.com/YuminosukeSato/ridgereg/pkg/errors"
)

// Table is an immutable, ordered set of observations. Column order is fixed
// at construction and determines design-matrix column order, so fit and
// predict calls built from the same column list always line up.
type Table struct {
	columns []string
	index   map[string]int
	data    *mat.Dense // rows x len(columns); nil when the table is empty
}

// FromRecords builds a Table from numeric records. Every record must supply
// every column with a finite numeric value; a missing key, NaN or Inf fails
// with an InvalidInputError. Keys outside columns are ignored, which lets
// prediction records carry an unused response column.
func FromRecords(columns []string, records []map[string]float64) (*Table, error) {
	t, err := newTable("dataset.FromRecords", columns, len(records))
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		for j, name := range columns {
			v, ok := rec[name]
			if !ok {
				return nil, errors.NewInvalidValueError("dataset.FromRecords", "covariate is missing", name, i)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.NewInvalidValueError("dataset.FromRecords", "value is not a finite number", name, i)
			}
			t.data.Set(i, j, v)
		}
	}
	return t, nil
}

// FromMixedRecords builds a Table from records whose values may be numeric
// (float64, float32, int, int64) or categorical strings. String values are
// resolved through enc; a string column without an encoding entry, an
// unknown category, or any other value kind fails with an
// InvalidInputError. Nothing is ever coerced silently.
func FromMixedRecords(columns []string, records []map[string]any, enc Encoding) (*Table, error) {
	const op = "dataset.FromMixedRecords"

	t, err := newTable(op, columns, len(records))
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		for j, name := range columns {
			raw, ok := rec[name]
			if !ok {
				return nil, errors.NewInvalidValueError(op, "covariate is missing", name, i)
			}

			var v float64
			switch x := raw.(type) {
			case float64:
				v = x
			case float32:
				v = float64(x)
			case int:
				v = float64(x)
			case int64:
				v = float64(x)
			case string:
				v, err = enc.Encode(name, x)
				if err != nil {
					return nil, err
				}
			default:
				return nil, errors.NewInvalidValueError(op, "value is not numeric and has no categorical encoding", name, i)
			}

			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.NewInvalidValueError(op, "value is not a finite number", name, i)
			}
			t.data.Set(i, j, v)
		}
	}
	return t, nil
}

func newTable(op string, columns []string, rows int) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.NewInvalidInputError(op, "no columns given")
	}

	index := make(map[string]int, len(columns))
	for j, name := range columns {
		if name == "" {
			return nil, errors.NewInvalidInputError(op, "empty column name")
		}
		if _, dup := index[name]; dup {
			return nil, errors.NewInvalidValueError(op, "duplicate column name", name, -1)
		}
		index[name] = j
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	t := &Table{columns: cols, index: index}
	if rows > 0 {
		t.data = mat.NewDense(rows, len(columns), nil)
	}
	return t, nil
}

// Len returns the number of observations.
func (t *Table) Len() int {
	if t.data == nil {
		return 0
	}
	r, _ := t.data.Dims()
	return r
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column's values in row order.
func (t *Table) Column(name string) ([]float64, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.NewInvalidValueError("Table.Column", "unknown column", name, -1)
	}
	out := make([]float64, t.Len())
	for i := range out {
		out[i] = t.data.At(i, j)
	}
	return out, nil
}

// Vector returns the named column as a gonum vector.
func (t *Table) Vector(name string) (*mat.VecDense, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, errors.NewInvalidInputError("Table.Vector", "empty table")
	}
	return mat.NewVecDense(len(vals), vals), nil
}

// Select assembles a matrix of the named columns, in the given order. This
// is how a fitted model rebuilds a design matrix from a prediction table
// whose own column order may differ from the training table's. A missing
// column fails with an InvalidInputError.
func (t *Table) Select(names []string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, errors.NewInvalidInputError("Table.Select", "no columns given")
	}

	srcCols := make([]int, len(names))
	for j, name := range names {
		idx, ok := t.index[name]
		if !ok {
			return nil, errors.NewInvalidValueError("Table.Select", "unknown column", name, -1)
		}
		srcCols[j] = idx
	}

	rows := t.Len()
	if rows == 0 {
		return nil, errors.NewInvalidInputError("Table.Select", "empty table")
	}

	out := mat.NewDense(rows, len(names), nil)

	const seqThreshold = 1000
	parallel.ParallelizeWithThreshold(rows, seqThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j, src := range srcCols {
				out.Set(i, j, t.data.At(i, src))
			}
		}
	})
	return out, nil
}

// Covariates returns the covariate matrix and the covariate names in table
// order, excluding the response column. The response must be present.
func (t *Table) Covariates(response string) (*mat.Dense, []string, error) {
	if !t.HasColumn(response) {
		return nil, nil, errors.NewInvalidValueError("Table.Covariates", "unknown response column", response, -1)
	}

	names := make([]string, 0, len(t.columns)-1)
	for _, name := range t.columns {
		if name != response {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, nil, errors.NewInvalidInputError("Table.Covariates", "table has no covariates besides the response")
	}

	X, err := t.Select(names)
	if err != nil {
		return nil, nil, err
	}
	return X, names, nil
}
