// Package bridge exposes the speech transcription and translation
// capabilities through a stable, callback-driven surface consumable from a
// host process. Handles are opaque; both entry points return immediately and
// report back through caller-supplied callbacks on unspecified goroutines.
//
// Callback dispatch contract, shared by both adapters:
//
//   - Every invocation delivers exactly one terminal callback, and it is the
//     last callback of that invocation. Zero or more non-terminal callbacks
//     (segments, progress) precede it.
//   - Callbacks fire on worker goroutines, never guaranteed to be the
//     caller's. Hosts mutating shared state from a callback must synchronize.
//   - Pointer arguments are valid only for the duration of the callback. The
//     C export layer frees the backing memory right after the call returns;
//     receivers copy anything they need to retain.
package bridge

// SegmentCallback receives transcription results. Non-terminal calls carry a
// decoded segment: (text, nil, start, end). The terminal call is either
// (nil, nil, 0, 0) on success or (nil, message, 0, 0) on failure.
type SegmentCallback func(text *string, errText *string, start, end float64, token any)

// ProgressCallback is advisory. Percent is 100 * lastSegmentEnd / duration
// and is deliberately not clamped: segment timing past the measured duration
// overshoots 100, and callers clamp if they care.
type ProgressCallback func(percent float64, token any)

// TranslateCallback delivers the single terminal outcome of a translation:
// (token, translated, nil) or (token, nil, message).
type TranslateCallback func(token any, translated *string, errText *string)
