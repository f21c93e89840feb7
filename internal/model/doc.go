// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the passive graph snapshot handed to the compiler by an
// editor: nodes, connections and variables, exactly as serialized.
//
// # Core Concepts
//
//   - Node: an instance of a registered node kind. Its Data map carries the
//     literal configuration the editor stored for it.
//   - Connection: joins one output pin to one input pin.
//   - Variable: a graph-level named value referenced by variable get/set nodes.
//
// The snapshot is immutable input. Nothing in this package validates
// structure; that is the job of the graph package once a registry is known.
package model
