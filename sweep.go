package ridgereg

import (
	"time"

	"github.com/YuminosukeSato/ridgereg/core/parallel"
	"github.com/YuminosukeSato/ridgereg/dataset"
	"github.com/YuminosukeSato/ridgereg/linear"
	"github.com/YuminosukeSato/ridgereg/pkg/errors"
	"github.com/YuminosukeSato/ridgereg/pkg/log"
)

// FitLambdas fits one model per penalty value on the same observations and
// returns the models in lambda order. The covariate matrix is assembled
// once and shared read-only; each fit owns its own estimator state, so the
// fits run in parallel. The first fit error aborts the sweep.
func FitLambdas(t *dataset.Table, response string, lambdas []float64, opts ...linear.Option) ([]*Model, error) {
	const op = "FitLambdas"
	start := time.Now()

	if len(lambdas) == 0 {
		return nil, errors.NewValueError(op, "no lambda values given")
	}
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

	models := make([]*Model, len(lambdas))
	errs := make([]error, len(lambdas))

	parallel.Parallelize(len(lambdas), func(first, last int) {
		for k := first; k < last; k++ {
			est := linear.NewRidge(lambdas[k], opts...)
			if fitErr := est.Fit(X, y); fitErr != nil {
				errs[k] = fitErr
				continue
			}
			models[k] = &Model{
				response: response,
				features: features,
				lambda:   lambdas[k],
				est:      est,
			}
		}
	})

	for k, fitErr := range errs {
		if fitErr != nil {
			return nil, errors.Wrapf(fitErr, "ridgereg: %s: fit failed for lambda=%g", op, lambdas[k])
		}
	}

	log.GetLogger().Debug("lambda sweep complete",
		log.ModelNameKey, "Ridge",
		log.OperationKey, log.OperationSweep,
		log.ResponseKey, response,
		log.SamplesKey, t.Len(),
		log.FeaturesKey, len(features),
		log.LambdaCountKey, len(lambdas),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return models, nil
}
