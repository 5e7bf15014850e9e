package document

import "errors"

// Error kinds surfaced by the conversion core. All are propagated to the
// caller wrapped with context, none are retried internally - test with
// errors.Is.
var (
	// ErrInvalidEncoding - input bytes are not decodable as text.
	ErrInvalidEncoding = errors.New("input is not valid text")

	// ErrImageLoad - the image-loading callback failed while resolving a
	// reference.
	ErrImageLoad = errors.New("unable to load image")

	// ErrImageSave - the image-saving callback failed while persisting
	// bytes.
	ErrImageSave = errors.New("unable to save image")

	// ErrStructure - the event stream did not match the expected nesting
	// shape (for example a list end without a matching start). Indicates a
	// modeling mismatch, not a recoverable input problem.
	ErrStructure = errors.New("structural invariant violation")
)
