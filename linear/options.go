package linear

// Option configures a Ridge estimator at construction time.
type Option func(*Ridge)

// WithCopyX sets whether Fit works on a copy of X. Disabling the copy saves
// an allocation when the caller no longer needs X.
func WithCopyX(copy bool) Option {
	return func(r *Ridge) {
		r.copyX = copy
	}
}

// WithStandardize sets whether non-intercept columns are standardized to
// zero mean and unit variance before the solve. Standardization is on by
// default; with it off, the penalty acts on the raw covariate scales and
// the reported and standardized coefficients coincide.
func WithStandardize(standardize bool) Option {
	return func(r *Ridge) {
		r.standardize = standardize
	}
}
