package reembed

import "errors"

// ErrInvalidMaxAttempts rejects a retry budget of zero or fewer attempts.
var ErrInvalidMaxAttempts = errors.New("retry budget must be positive")
