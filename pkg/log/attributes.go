// Standard attribute keys for ridge-regression log records. Using these keys
// keeps fit/predict records filterable across the library.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "Ridge".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "transform", "sweep".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of observations (rows).
	SamplesKey = "data.samples"

	// FeaturesKey is the number of covariates (columns, intercept excluded).
	FeaturesKey = "data.features"

	// ResponseKey names the response column of a fit.
	ResponseKey = "data.response"
)

// Hyperparameters and results.
const (
	// LambdaKey is the L2 penalty strength of a fit.
	LambdaKey = "hyperparams.lambda"

	// LambdaCountKey is the number of penalty values in a sweep.
	LambdaCountKey = "sweep.lambda_count"

	// DurationMsKey is the wall time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// PredsKey is the number of predictions produced.
	PredsKey = "preds.count"
)

// Error context.
const (
	// ErrorTypeKey categorizes a failure, e.g. "InvalidInputError".
	ErrorTypeKey = "error.type"
)

// Standard operation values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationSweep     = "sweep"
)
