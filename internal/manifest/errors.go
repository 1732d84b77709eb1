package manifest

import "errors"

// ErrInternalInvariant indicates a code bug: the dispatcher assigned a
// resolved identity to a dependency the rewriter cannot apply it to, or a
// requirement conversion reached a case the caller was supposed to guard
// against. Never recovered inside this core; always propagated.
var ErrInternalInvariant = errors.New("manifest: internal invariant violated")

// ErrDisabledMode indicates an attempt to construct the loader decorator
// with ModeDisabled, which is a static configuration error — callers are
// expected to bypass the decorator entirely in that case.
var ErrDisabledMode = errors.New("manifest: cannot construct decorator with disabled mode")
