package ridgereg

import (
	"time"

	"github.com/YuminosukeSato/ridgereg/dataset"
	"github.com/YuminosukeSato/ridgereg/linear"
	"github.com/YuminosukeSato/ridgereg/pkg/errors"
	"github.com/YuminosukeSato/ridgereg/pkg/log"
)

// InterceptName is the key under which the intercept appears in a fitted
// model's coefficient map.
const InterceptName = "(Intercept)"

// Model is an immutable fitted ridge-regression model over named
// covariates. It owns the covariate order, the response name, the penalty,
// the fit-time standardization statistics and the coefficient vector.
// A Model is read-only after Fit and safe for concurrent use; independent
// fits share no state.
type Model struct {
	response string
	features []string
	lambda   float64
	est      *linear.Ridge
}

// Fit estimates a ridge model from the observations in t, using every
// column except response as a covariate, in table order. lambda >= 0 is the
// penalty strength; it is caller-supplied and never learned, and lambda = 0
// is an ordinary least-squares fit.
//
// Fit fails with an InvalidInputError when t is empty, response is not a
// column of t, or t has no covariates. Value-level validation (missing and
// non-finite entries) happens during table construction and in the
// estimator itself.
func Fit(t *dataset.Table, response string, lambda float64, opts ...linear.Option) (*Model, error) {
	const op = "Fit"
	start := time.Now()

	if t == nil || t.Len() == 0 {
		return nil, errors.NewInvalidInputError(op, "empty observation set")
	}

	X, features, err := t.Covariates(response)
	if err != nil {
		return nil, err
	}
	y, err := t.Vector(response)
	if err != nil {
		return nil, err
	}

	est := linear.NewRidge(lambda, opts...)
	if err := est.Fit(X, y); err != nil {
		return nil, err
	}

	log.GetLogger().Debug("ridge fit complete",
		log.ModelNameKey, "Ridge",
		log.OperationKey, log.OperationFit,
		log.ResponseKey, response,
		log.SamplesKey, t.Len(),
		log.FeaturesKey, len(features),
		log.LambdaKey, lambda,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Model{
		response: response,
		features: features,
		lambda:   lambda,
		est:      est,
	}, nil
}

// Predict returns one predicted response per observation in t, in input
// order. t must contain every covariate used at fit time; its column order
// may differ and a response column, if present, is ignored. The fit-time
// standardization is reapplied as stored, never recomputed from t.
func (m *Model) Predict(t *dataset.Table) ([]float64, error) {
	const op = "Model.Predict"

	if t == nil || t.Len() == 0 {
		return nil, errors.NewInvalidInputError(op, "empty observation set")
	}

	X, err := t.Select(m.features)
	if err != nil {
		return nil, err
	}

	pred, err := m.est.Predict(X)
	if err != nil {
		return nil, err
	}

	rows := t.Len()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = pred.At(i, 0)
	}

	log.GetLogger().Debug("ridge predict complete",
		log.ModelNameKey, "Ridge",
		log.OperationKey, log.OperationPredict,
		log.LambdaKey, m.lambda,
		log.PredsKey, rows,
	)
	return out, nil
}

// Coefficients returns the fitted coefficients keyed by covariate name, on
// the original covariate scale, with the intercept under InterceptName.
func (m *Model) Coefficients() map[string]float64 {
	coef := m.est.Coef()
	out := make(map[string]float64, len(coef)+1)
	out[InterceptName] = m.est.Intercept()
	for j, name := range m.features {
		out[name] = coef[j]
	}
	return out
}

// StandardizedCoefficients returns the coefficients keyed by covariate name
// on the standardized scale the solve ran in, with the intercept under
// InterceptName. Comparing these across a lambda sweep shows the shrinkage
// directly, free of covariate-scale effects.
func (m *Model) StandardizedCoefficients() map[string]float64 {
	coef := m.est.StandardizedCoef()
	out := make(map[string]float64, len(coef)+1)
	out[InterceptName] = m.est.StandardizedIntercept()
	for j, name := range m.features {
		out[name] = coef[j]
	}
	return out
}

// Intercept returns the fitted intercept on the original covariate scale.
func (m *Model) Intercept() float64 {
	return m.est.Intercept()
}

// Lambda returns the penalty this model was fitted with.
func (m *Model) Lambda() float64 {
	return m.lambda
}

// Response returns the response column name used at fit time.
func (m *Model) Response() string {
	return m.response
}

// Features returns the covariate names in design-matrix column order.
func (m *Model) Features() []string {
	out := make([]string, len(m.features))
	copy(out, m.features)
	return out
}

// Score returns the coefficient of determination R^2 of the model's
// predictions on t, which must contain both the covariates and the response
// column.
func (m *Model) Score(t *dataset.Table) (float64, error) {
	const op = "Model.Score"

	if t == nil || t.Len() == 0 {
		return 0, errors.NewInvalidInputError(op, "empty observation set")
	}

	X, err := t.Select(m.features)
	if err != nil {
		return 0, err
	}
	y, err := t.Vector(m.response)
	if err != nil {
		return 0, err
	}
	return m.est.Score(X, y)
}
