// Package flow resolves the execution order of a validated graph.
//
// Starting at the entry node, Resolve follows the standard exec output to
// build a linear chain of steps. Every other exec output of a step (an if's
// then/else, a loop's body) is resolved recursively into its own nested
// block. The result is a tree that the emitter walks top-down.
//
// Cycle detection is path scoped: each chain carries the set of
// (node, exec output) pairs taken to reach it, and a branch gets its own
// copy. Taking the same exec output twice on one path is a cycle; reaching a
// node again from a sibling branch is not.
package flow
