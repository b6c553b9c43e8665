package doctors

import "errors"

// ErrProviderNotFound is returned when a provider id is not in the catalog.
var ErrProviderNotFound = errors.New("doctors: provider not found")
