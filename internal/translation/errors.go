package translation

import "errors"

// ErrResourceMissing marks a failure caused by an uninstalled language
// resource for the requested (source, target) pair. The bridge matches it
// with errors.Is to substitute a user-actionable message.
var ErrResourceMissing = errors.New("translation: language resource not installed")
