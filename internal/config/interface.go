package config

import "context"

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads every manifest file found under the given paths (files or
	// directories) and translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// Parse translates a single in-memory manifest. filename is used only
	// for diagnostics.
	Parse(ctx context.Context, filename string, src []byte) (*Model, error)
}
