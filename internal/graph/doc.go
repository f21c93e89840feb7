// Package graph is the indexed, validated view of a snapshot that the
// compiler queries.
//
// New builds every index once (node by id, connections by source pin,
// connection by target pin, variables by name) and runs the structural
// checks eagerly, so that traversal and emission can assume a well-formed
// graph:
//
//   - node ids are unique and every kind is registered;
//   - variables are unique, typed from the closed set, and their defaults fit;
//   - every connection joins an existing output pin to an existing input pin
//     of the same pin kind and compatible data type;
//   - exec outputs drive at most one connection and data inputs accept at
//     most one (exec input fan-in is checked separately by CheckExecFanIn);
//   - exactly one entry node exists;
//   - the data-flow graph is acyclic.
//
// A Graph is immutable after New and safe for concurrent reads.
package graph
