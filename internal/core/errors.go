package core

import "errors"

var (
	// ErrMissingQuestion means the request carried no question at all.
	// No oracle call is made in this case.
	ErrMissingQuestion = errors.New("question is required")

	// ErrNotInitialized means the catalog has not finished loading.
	ErrNotInitialized = errors.New("catalog not initialized")

	// ErrOracle covers transport, auth and quota failures from the oracle.
	ErrOracle = errors.New("oracle call failed")

	// ErrOracleTimeout means the oracle exceeded its allotted time.
	ErrOracleTimeout = errors.New("oracle call timed out")
)
