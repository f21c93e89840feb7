// Package compiler turns a graph snapshot into script text.
//
// A compilation runs in four phases over an immutable snapshot:
//
//  1. graph.New indexes the snapshot and checks its structure.
//  2. flow.Resolve orders the exec chain into a nested tree.
//  3. The tree is emitted top-down. Each statement node's emitter pulls its
//     data inputs through the expression resolver, which follows
//     connections back to source nodes, inlines pure values and binds
//     side-effecting ones to a temporary exactly once per execution path.
//  4. Header, preludes and variable definitions are assembled around the
//     body, and nodes never reached produce UnreachableNodeWarning
//     diagnostics.
//
// Every call owns its own allocator, memo scopes and buffers; only the
// sealed registry is shared, so a Compiler may be used concurrently.
package compiler
