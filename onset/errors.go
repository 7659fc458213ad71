package onset

import "errors"

// ErrInvalidParameter is wrapped by every option and constructor error.
var ErrInvalidParameter = errors.New("onset: invalid parameter")
