// Package registry provides the central "glue" for node kinds.
//
// The Registry stores the node definitions loaded from manifests and the Go
// emitters that render them. A manifest names its emitter (e.g. "log"); the
// registry binds that name to the registered *RegisteredEmitter once, during
// validation, so the compiler never dispatches on strings.
//
// Population happens in one phase at startup: modules register emitters,
// manifests are merged, and Validate seals the registry. A sealed registry is
// read-only and safe to share between concurrent compilations.
package registry
