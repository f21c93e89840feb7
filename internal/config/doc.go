// Package config defines the format-agnostic model of node-kind manifests,
// along with the Loader interface for reading them from a concrete format.
//
// The registry consumes a config.Model and never sees the source format. The
// HCL implementation lives in the hcl package.
package config
