package window

import "errors"

// ErrUnknownType is returned by Parse for unrecognised window names.
var ErrUnknownType = errors.New("unknown window type")
