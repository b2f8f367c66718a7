package errors

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CheckMatrix scans a matrix for NaN or Inf entries and returns an
// InvalidInputError naming the first offending position. names, when
// non-nil, supplies a covariate name per column for the error message.
func CheckMatrix(op string, m mat.Matrix, names []string) error {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				name := ""
				if names != nil && j < len(names) {
					name = names[j]
				}
				return NewInvalidValueError(op, describeBadValue(v), name, i)
			}
		}
	}
	return nil
}

// CheckVector scans a vector for NaN or Inf entries.
func CheckVector(op string, v mat.Vector, name string) error {
	for i := 0; i < v.Len(); i++ {
		x := v.AtVec(i)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return NewInvalidValueError(op, describeBadValue(x), name, i)
		}
	}
	return nil
}

// CheckValue validates a single scalar.
func CheckValue(op string, x float64, covariate string, row int) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return NewInvalidValueError(op, describeBadValue(x), covariate, row)
	}
	return nil
}

func describeBadValue(v float64) string {
	if math.IsNaN(v) {
		return "value is NaN (missing values must be removed or encoded by the caller)"
	}
	return "value is infinite"
}
