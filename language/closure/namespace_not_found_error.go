package closure

import "errors"

// ErrNamespaceNotFound is returned when no rule provides a required namespace.
var ErrNamespaceNotFound = errors.New("namespace not found")
