package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ridgereg/pkg/errors"
)

func coefNorm(coef []float64) float64 {
	var sum float64
	for _, c := range coef {
		sum += c * c
	}
	return math.Sqrt(sum)
}

func TestRidge_OLSExactLine(t *testing.T) {
	// y = 2x with no noise; an unregularized fit must recover the line.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	r := NewRidge(0)
	if err := r.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if got := r.Coef()[0]; math.Abs(got-2.0) > 1e-9 {
		t.Errorf("Expected slope ~2.0, got %f", got)
	}
	if got := r.Intercept(); math.Abs(got) > 1e-9 {
		t.Errorf("Expected intercept ~0.0, got %f", got)
	}

	XTest := mat.NewDense(1, 1, []float64{5})
	pred, err := r.Predict(XTest)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if got := pred.At(0, 0); math.Abs(got-10.0) > 1e-9 {
		t.Errorf("Expected prediction ~10.0, got %f", got)
	}
}

func TestRidge_OLSTwoFeatures(t *testing.T) {
	// y = 1 + 2*x1 + 3*x2 exactly.
	X := mat.NewDense(6, 2, []float64{
		0, 1,
		1, 0,
		2, 2,
		3, 1,
		4, 3,
		5, 2,
	})
	y := mat.NewDense(6, 1, []float64{4, 3, 11, 10, 18, 17})

	r := NewRidge(0)
	if err := r.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	wantCoef := []float64{2, 3}
	for j, want := range wantCoef {
		if got := r.Coef()[j]; math.Abs(got-want) > 1e-8 {
			t.Errorf("coef[%d]: expected %f, got %f", j, want, got)
		}
	}
	if got := r.Intercept(); math.Abs(got-1.0) > 1e-8 {
		t.Errorf("Expected intercept ~1.0, got %f", got)
	}

	score, err := r.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score < 1-1e-10 {
		t.Errorf("Expected R^2 ~1 on exact data, got %f", score)
	}
}

func TestRidge_LargeLambdaShrinksSlope(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	ols := NewRidge(0)
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit(lambda=0) failed: %v", err)
	}
	heavy := NewRidge(1000)
	if err := heavy.Fit(X, y); err != nil {
		t.Fatalf("Fit(lambda=1000) failed: %v", err)
	}

	olsSlope := math.Abs(ols.Coef()[0])
	heavySlope := math.Abs(heavy.Coef()[0])
	if heavySlope >= olsSlope {
		t.Errorf("Expected |slope| at lambda=1000 (%f) strictly below lambda=0 slope (%f)", heavySlope, olsSlope)
	}
	if heavySlope == 0 {
		t.Error("Slope should shrink toward zero, not snap to it")
	}
}

func TestRidge_ShrinkageMonotone(t *testing.T) {
	// Standardized coefficient norm must be non-increasing in lambda.
	X := mat.NewDense(6, 2, []float64{
		0.3, 1.2,
		1.1, 0.4,
		2.2, 2.3,
		2.9, 1.1,
		4.1, 3.2,
		5.0, 2.1,
	})
	y := mat.NewDense(6, 1, []float64{3.8, 3.4, 11.2, 9.6, 18.3, 16.7})

	lambdas := []float64{0, 0.1, 1, 10, 100, 1000}
	prevNorm := math.Inf(1)
	for _, lambda := range lambdas {
		r := NewRidge(lambda)
		if err := r.Fit(X, y); err != nil {
			t.Fatalf("Fit(lambda=%g) failed: %v", lambda, err)
		}
		norm := coefNorm(r.StandardizedCoef())
		if norm > prevNorm+1e-10 {
			t.Errorf("lambda=%g: coefficient norm %f exceeds norm %f at smaller lambda", lambda, norm, prevNorm)
		}
		prevNorm = norm
	}
}

func TestRidge_TrainingErrorGrowsWithLambda(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		0.3, 1.2,
		1.1, 0.4,
		2.2, 2.3,
		2.9, 1.1,
		4.1, 3.2,
		5.0, 2.1,
	})
	y := mat.NewDense(6, 1, []float64{3.8, 3.4, 11.2, 9.6, 18.3, 16.7})

	trainMSE := func(lambda float64) float64 {
		r := NewRidge(lambda)
		if err := r.Fit(X, y); err != nil {
			t.Fatalf("Fit(lambda=%g) failed: %v", lambda, err)
		}
		pred, err := r.Predict(X)
		if err != nil {
			t.Fatalf("Predict(lambda=%g) failed: %v", lambda, err)
		}
		var sum float64
		for i := 0; i < 6; i++ {
			d := y.At(i, 0) - pred.At(i, 0)
			sum += d * d
		}
		return sum / 6
	}

	prev := -1.0
	for _, lambda := range []float64{0, 1, 10, 100} {
		mse := trainMSE(lambda)
		if mse < prev-1e-10 {
			t.Errorf("training MSE at lambda=%g (%f) below MSE at smaller lambda (%f)", lambda, mse, prev)
		}
		prev = mse
	}
}

func TestRidge_SingularAtLambdaZero(t *testing.T) {
	// Two identical columns: rank deficient without regularization.
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	r := NewRidge(0)
	err := r.Fit(X, y)
	if err == nil {
		t.Fatal("Expected SingularSystemError for collinear design at lambda=0")
	}
	var singular *errors.SingularSystemError
	if !errors.As(err, &singular) {
		t.Fatalf("Expected SingularSystemError, got %v", err)
	}

	// The same design must fit once regularized.
	reg := NewRidge(0.5)
	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Fit(lambda=0.5) on collinear design failed: %v", err)
	}
	if !reg.IsFitted() {
		t.Error("Estimator should be fitted")
	}
}

func TestRidge_WideDesign(t *testing.T) {
	// More covariates than observations: defined for lambda > 0, singular
	// at lambda = 0.
	X := mat.NewDense(3, 5, []float64{
		1, 0.2, 3.1, 0.5, 2.2,
		2, 1.1, 0.7, 1.9, 0.3,
		3, 2.5, 1.4, 0.8, 1.1,
	})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})

	if err := NewRidge(1).Fit(X, y); err != nil {
		t.Fatalf("Fit(lambda=1) on wide design failed: %v", err)
	}

	err := NewRidge(0).Fit(X, y)
	var singular *errors.SingularSystemError
	if !errors.As(err, &singular) {
		t.Fatalf("Expected SingularSystemError on wide design at lambda=0, got %v", err)
	}
}

func TestRidge_NaNInput(t *testing.T) {
	y := mat.NewDense(3, 1, []float64{1, 2, 3})

	XBad := mat.NewDense(3, 1, []float64{1, math.NaN(), 3})
	err := NewRidge(1).Fit(XBad, y)
	var invalid *errors.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidInputError for NaN in X, got %v", err)
	}

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	yBad := mat.NewDense(3, 1, []float64{1, math.Inf(1), 3})
	err = NewRidge(1).Fit(X, yBad)
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidInputError for Inf in y, got %v", err)
	}

	r := NewRidge(1)
	if err := r.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	_, err = r.Predict(XBad)
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidInputError for NaN at predict, got %v", err)
	}
}

func TestRidge_NotFitted(t *testing.T) {
	r := NewRidge(1)
	_, err := r.Predict(mat.NewDense(1, 1, []float64{1}))
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Fatalf("Expected NotFittedError, got %v", err)
	}
}

func TestRidge_DimensionMismatch(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	yShort := mat.NewDense(2, 1, []float64{1, 2})

	err := NewRidge(1).Fit(X, yShort)
	var dim *errors.DimensionError
	if !errors.As(err, &dim) {
		t.Fatalf("Expected DimensionError for row mismatch, got %v", err)
	}

	y := mat.NewDense(3, 1, []float64{1, 2, 3})
	r := NewRidge(1)
	if err := r.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	_, err = r.Predict(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	if !errors.As(err, &dim) {
		t.Fatalf("Expected DimensionError for column mismatch at predict, got %v", err)
	}
}

func TestRidge_PredictRowOrderInvariance(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2.1, 3.9, 6.2, 7.8})

	r := NewRidge(0.5)
	if err := r.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	forward := mat.NewDense(3, 1, []float64{1.5, 2.5, 3.5})
	reversed := mat.NewDense(3, 1, []float64{3.5, 2.5, 1.5})

	predF, err := r.Predict(forward)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	predR, err := r.Predict(reversed)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if predF.At(i, 0) != predR.At(2-i, 0) {
			t.Errorf("row %d: permuted prediction %f differs from %f", i, predR.At(2-i, 0), predF.At(i, 0))
		}
	}
}

func TestRidge_NoStandardize(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	r := NewRidge(0, WithStandardize(false))
	if err := r.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if got := r.Coef()[0]; math.Abs(got-2.0) > 1e-9 {
		t.Errorf("Expected slope ~2.0, got %f", got)
	}
	// Without scaling the two coefficient views coincide.
	if got := r.StandardizedCoef()[0]; math.Abs(got-r.Coef()[0]) > 1e-12 {
		t.Errorf("Expected standardized coef %f to equal coef %f", got, r.Coef()[0])
	}
}

func TestRidge_GetParams(t *testing.T) {
	r := NewRidge(2.5, WithCopyX(false))
	params := r.GetParams()
	if params["lambda"] != 2.5 {
		t.Errorf("Expected lambda 2.5, got %v", params["lambda"])
	}
	if params["copy_x"] != false {
		t.Errorf("Expected copy_x false, got %v", params["copy_x"])
	}
	if params["standardize"] != true {
		t.Errorf("Expected standardize true, got %v", params["standardize"])
	}
}
