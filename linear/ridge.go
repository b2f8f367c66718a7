// Package linear provides the closed-form ridge-regression estimator over
// gonum matrices.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ridgereg/core/model"
	"github.com/YuminosukeSato/ridgereg/core/parallel"
	"github.com/YuminosukeSato/ridgereg/pkg/errors"
	"github.com/YuminosukeSato/ridgereg/preprocessing"
)

// rankTol is the relative tolerance on the R-factor diagonal below which an
// unregularized system is treated as rank deficient.
const rankTol = 1e-12

// seqThreshold is the row count at or below which matrix assembly and
// prediction loops run sequentially.
const seqThreshold = 1000

// Ridge fits a linear model with L2-penalized coefficients by solving the
// regularized normal equations
//
//	(X'X + lambda*I') beta = X'y
//
// where I' is the identity with the intercept entry zeroed, so the intercept
// is never penalized. Non-intercept columns are standardized to zero mean
// and unit variance with statistics taken from the fitting data; the same
// statistics are reapplied at prediction time.
//
// For lambda > 0 the standardized system is symmetric positive definite and
// is solved by Cholesky factorization, so collinear or wide (p > n) designs
// still have a defined solution. For lambda = 0 the fit is an ordinary
// least-squares QR solve; a rank-deficient design fails with a
// SingularSystemError and is never regularized on the caller's behalf.
//
// A fitted Ridge is immutable apart from Reset and safe for concurrent
// prediction.
type Ridge struct {
	state *model.StateManager

	lambda      float64
	copyX       bool
	standardize bool

	scaler *preprocessing.StandardScaler

	// Coefficients on the standardized scale, as solved. The intercept on
	// that scale is the response mean when centering is on.
	coefStd      []float64
	interceptStd float64

	// Coefficients back-transformed to the original covariate scale.
	coef      []float64
	intercept float64

	nFeatures int
}

// NewRidge creates an unfitted ridge estimator with the given penalty.
// lambda must be >= 0; negative values are a caller error and are not
// validated. lambda = 0 is an ordinary least-squares fit.
func NewRidge(lambda float64, opts ...Option) *Ridge {
	r := &Ridge{
		state:       model.NewStateManager(),
		lambda:      lambda,
		copyX:       true,
		standardize: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fit estimates the coefficients from X (n_samples x n_features) and y
// (n_samples x 1). Inputs must be complete and finite; NaN or Inf entries
// fail with an InvalidInputError rather than being coerced.
func (r *Ridge) Fit(X, y mat.Matrix) error {
	const op = "Ridge.Fit"

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewInvalidInputError(op, "empty data")
	}
	if yRows != rows {
		return errors.NewDimensionError(op, rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}
	if err := errors.CheckMatrix(op, X, nil); err != nil {
		return err
	}
	if err := errors.CheckMatrix(op, y, nil); err != nil {
		return err
	}

	var XWork mat.Matrix = X
	if r.copyX {
		XWork = mat.DenseCopyOf(X)
	}

	scaler := preprocessing.NewStandardScaler(r.standardize, r.standardize)
	XStd, err := scaler.FitTransform(XWork)
	if err != nil {
		return err
	}

	// Design matrix [1 | Xstd].
	XDesign := mat.NewDense(rows, cols+1, nil)
	parallel.ParallelizeWithThreshold(rows, seqThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			XDesign.Set(i, 0, 1.0)
			for j := 0; j < cols; j++ {
				XDesign.Set(i, j+1, XStd.At(i, j))
			}
		}
	})

	yVec := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	beta := mat.NewVecDense(cols+1, nil)
	if r.lambda > 0 {
		if err := r.solveRegularized(op, XDesign, yVec, beta); err != nil {
			return err
		}
	} else {
		if err := r.solveLeastSquares(op, XDesign, yVec, beta); err != nil {
			return err
		}
	}

	r.scaler = scaler
	r.interceptStd = beta.AtVec(0)
	r.coefStd = make([]float64, cols)
	for j := 0; j < cols; j++ {
		r.coefStd[j] = beta.AtVec(j + 1)
	}

	// Undo the standardization so reported coefficients live on the
	// original covariate scale.
	r.coef = make([]float64, cols)
	r.intercept = r.interceptStd
	for j := 0; j < cols; j++ {
		r.coef[j] = r.coefStd[j] / scaler.Scale[j]
		r.intercept -= r.coefStd[j] * scaler.Mean[j] / scaler.Scale[j]
	}

	r.nFeatures = cols
	r.state.SetFitted()
	r.state.SetDimensions(cols, rows)
	return nil
}

// solveRegularized solves (X'X + lambda*I')beta = X'y by Cholesky. With the
// intercept column of ones and centered covariates the system is positive
// definite for any lambda > 0.
func (r *Ridge) solveRegularized(op string, XDesign *mat.Dense, yVec *mat.VecDense, beta *mat.VecDense) error {
	_, p := XDesign.Dims()

	var gramDense mat.Dense
	gramDense.Mul(XDesign.T(), XDesign)

	gram := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			gram.SetSym(i, j, gramDense.At(i, j))
		}
	}
	// Penalize every diagonal entry except the intercept's.
	for j := 1; j < p; j++ {
		gram.SetSym(j, j, gram.At(j, j)+r.lambda)
	}

	var xty mat.VecDense
	xty.MulVec(XDesign.T(), yVec)

	var chol mat.Cholesky
	if ok := chol.Factorize(gram); !ok {
		return errors.Newf("ridgereg: %s: Cholesky factorization failed for lambda=%g", op, r.lambda)
	}
	if err := chol.SolveVecTo(beta, &xty); err != nil {
		return errors.Wrapf(err, "ridgereg: %s: regularized solve failed", op)
	}
	return nil
}

// solveLeastSquares solves the unregularized system by QR. Rank deficiency
// is detected on the R-factor diagonal and surfaced as a
// SingularSystemError; a merely ill-conditioned solve succeeds with a
// warning.
func (r *Ridge) solveLeastSquares(op string, XDesign *mat.Dense, yVec *mat.VecDense, beta *mat.VecDense) error {
	rows, p := XDesign.Dims()
	if rows < p {
		// Fewer observations than design columns cannot have full column
		// rank.
		return errors.NewSingularSystemError(op, rows, p)
	}

	var qr mat.QR
	qr.Factorize(XDesign)

	var rFactor mat.Dense
	qr.RTo(&rFactor)

	maxDiag := 0.0
	minDiag := math.Inf(1)
	for j := 0; j < p; j++ {
		d := math.Abs(rFactor.At(j, j))
		if d > maxDiag {
			maxDiag = d
		}
		if d < minDiag {
			minDiag = d
		}
	}
	if maxDiag == 0 || minDiag < rankTol*maxDiag {
		return errors.NewSingularSystemError(op, rows, p)
	}

	if err := qr.SolveVecTo(beta, false, yVec); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
			// Solution computed but numerically delicate.
			errors.Warn(errors.NewIllConditionedWarning(op, float64(cond)))
			return nil
		}
		return errors.NewSingularSystemError(op, rows, p)
	}
	return nil
}

// Predict returns one predicted response per row of X, in row order. The
// standardization captured at fit time is reapplied to X; statistics are
// never recomputed from the prediction data.
func (r *Ridge) Predict(X mat.Matrix) (mat.Matrix, error) {
	const op = "Ridge.Predict"

	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("Ridge", "Predict")
	}

	rows, cols := X.Dims()
	if rows == 0 {
		return nil, errors.NewInvalidInputError(op, "empty data")
	}
	if cols != r.nFeatures {
		return nil, errors.NewDimensionError(op, r.nFeatures, cols, 1)
	}
	if err := errors.CheckMatrix(op, X, nil); err != nil {
		return nil, err
	}

	XStd, err := r.scaler.Transform(X)
	if err != nil {
		return nil, err
	}

	predictions := mat.NewDense(rows, 1, nil)
	parallel.ParallelizeWithThreshold(rows, seqThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := r.interceptStd
			for j := 0; j < cols; j++ {
				pred += XStd.At(i, j) * r.coefStd[j]
			}
			predictions.Set(i, 0, pred)
		}
	})
	return predictions, nil
}

// Coef returns the fitted coefficients on the original covariate scale, one
// per feature in column order.
func (r *Ridge) Coef() []float64 {
	if r.coef == nil {
		return nil
	}
	out := make([]float64, len(r.coef))
	copy(out, r.coef)
	return out
}

// Intercept returns the fitted intercept on the original covariate scale.
func (r *Ridge) Intercept() float64 {
	return r.intercept
}

// StandardizedCoef returns the coefficients on the standardized scale the
// solve ran in. Shrinkage across a lambda sweep is monotone on this scale.
func (r *Ridge) StandardizedCoef() []float64 {
	if r.coefStd == nil {
		return nil
	}
	out := make([]float64, len(r.coefStd))
	copy(out, r.coefStd)
	return out
}

// StandardizedIntercept returns the intercept on the standardized scale.
func (r *Ridge) StandardizedIntercept() float64 {
	return r.interceptStd
}

// Lambda returns the penalty the estimator was configured with.
func (r *Ridge) Lambda() float64 {
	return r.lambda
}

// IsFitted reports whether Fit has completed successfully.
func (r *Ridge) IsFitted() bool {
	return r.state.IsFitted()
}

// Score returns the coefficient of determination R^2 on (X, y).
func (r *Ridge) Score(X, y mat.Matrix) (float64, error) {
	const op = "Ridge.Score"

	if !r.state.IsFitted() {
		return 0, errors.NewNotFittedError("Ridge", "Score")
	}

	yPred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	var yMean float64
	for i := 0; i < rows; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(rows)

	var tss, rss float64
	for i := 0; i < rows; i++ {
		yTrue := y.At(i, 0)
		diff := yTrue - yPred.At(i, 0)
		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += diff * diff
	}
	if tss == 0 {
		return 0, errors.NewValueError(op, "total sum of squares is zero (no variance in y)")
	}
	return 1 - rss/tss, nil
}

// GetParams returns the estimator's hyperparameters.
func (r *Ridge) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"lambda":      r.lambda,
		"standardize": r.standardize,
		"copy_x":      r.copyX,
	}
}

// Reset returns the estimator to the unfitted state.
func (r *Ridge) Reset() {
	r.state.Reset()
	r.scaler = nil
	r.coefStd = nil
	r.coef = nil
	r.interceptStd = 0
	r.intercept = 0
	r.nFeatures = 0
}
