package storage

import "errors"

// ErrUnsupportedDriver indicates a storage driver name this package does not know.
var ErrUnsupportedDriver = errors.New("unsupported storage driver")
