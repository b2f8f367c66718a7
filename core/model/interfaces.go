package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for estimators that learn from training data.
type Fitter interface {
	// Fit trains the estimator on X (n_samples x n_features) and y
	// (n_samples x 1).
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for fitted estimators that produce predictions.
type Predictor interface {
	// Predict returns one predicted response per input row, in input order.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for estimators that can evaluate themselves.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces a regression estimator implements.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// LinearModel is the interface for fitted linear estimators exposing their
// parameters.
type LinearModel interface {
	// Coef returns the learned coefficients, one per covariate, in
	// design-matrix column order (intercept excluded).
	Coef() []float64
	// Intercept returns the learned intercept.
	Intercept() float64
}

// Transformer is the interface for stateful data transforms whose
// statistics are learned at fit time and reapplied verbatim afterwards.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter exposes an estimator's hyperparameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
