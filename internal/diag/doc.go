// Package diag defines the compiler's error taxonomy and the structured
// diagnostic shape reported to callers.
//
// Every fatal condition is a concrete error type paired with a sentinel so
// callers can match with errors.Is and inspect with errors.As. The single
// non-fatal condition, an unreachable node, is only ever reported as a
// Diagnostic warning.
package diag
