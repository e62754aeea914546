package contract

import "context"

// Capability is a named responder: it accepts an augmented text message and
// produces a single text response.
type Capability interface {
	Invoke(ctx context.Context, message string) (string, error)
}

type Registry interface {
	// Resolve returns the capability for id, falling back to the general
	// capability when id is not registered.
	Resolve(id CapabilityID) Capability
	Descriptors() []CapabilityDescriptor
}

// Extractor turns a batch of spooled document files into one best-effort text
// blob. It never fails the caller; per-file errors are embedded inline.
type Extractor interface {
	Extract(ctx context.Context, paths []string) string
}
