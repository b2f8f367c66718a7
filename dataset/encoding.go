package dataset

import (
	"math"

	"github.com/YuminosukeSato/ridgereg/pkg/errors"
)

// Encoding maps categorical covariate values to numeric codes, one table
// per column. The caller owns the table and decides the codes; the dataset
// package only applies it. An unknown column or category is an error, never
// a guessed code.
type Encoding map[string]map[string]float64

// Encode resolves a category of the named column to its numeric code.
func (e Encoding) Encode(column, category string) (float64, error) {
	codes, ok := e[column]
	if !ok {
		return 0, errors.NewInvalidValueError("Encoding.Encode", "no encoding table for categorical covariate", column, -1)
	}
	code, ok := codes[category]
	if !ok {
		return 0, errors.NewInvalidValueError("Encoding.Encode", "unknown category "+category, column, -1)
	}
	if math.IsNaN(code) || math.IsInf(code, 0) {
		return 0, errors.NewInvalidValueError("Encoding.Encode", "encoding table maps category "+category+" to a non-finite code", column, -1)
	}
	return code, nil
}

// Columns returns the names of the columns this encoding covers.
func (e Encoding) Columns() []string {
	cols := make([]string, 0, len(e))
	for name := range e {
		cols = append(cols, name)
	}
	return cols
}
