package domain

import "errors"

// ErrProductNotFound reports that no catalog product
// exists for the requested slug.
var ErrProductNotFound = errors.New("product not found")
