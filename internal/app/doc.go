// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run modes (one-shot compile, build
// server, socket.io watcher), decoupled from any specific entrypoint like a
// CLI.
package app
