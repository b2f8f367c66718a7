// Package ridgereg provides closed-form ridge regression over named
// covariates: fit a linear model with an L2 penalty on the coefficients,
// predict responses for new observations, and inspect coefficients across
// penalty values.
//
// Fitting solves the regularized normal equations
//
//	beta = (X'X + lambda*I')^-1 X'y
//
// where the design matrix X carries an intercept column of ones and I' is
// the identity with the intercept entry zeroed, so the intercept is never
// penalized. Covariates are standardized with statistics from the fitting
// data, and the same statistics are reapplied at prediction time. Because
// any lambda > 0 makes the system positive definite, ridge fits remain
// defined for collinear covariates or more covariates than observations,
// where ordinary least squares breaks down. At lambda = 0 the fit is plain
// least squares and a rank-deficient design fails with a
// SingularSystemError.
//
// # Quick start
//
//	cols := []string{"area", "rooms", "price"}
//	train, err := dataset.FromRecords(cols, records)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	model, err := ridgereg.Fit(train, "price", 0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	preds, err := model.Predict(test)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Coefficients())
//
// Fitted models are immutable, so sweeping many penalty values in parallel
// is safe; FitLambdas does exactly that. Categorical covariates are encoded
// through an explicit dataset.Encoding table owned by the caller; the
// library never guesses an encoding and never imputes missing values.
package ridgereg
