// Package app wires the tag subsystem into a runnable application: logger,
// factory catalog, descriptor loading, registry, resolution service and the
// durable store. It is decoupled from any specific entrypoint like a CLI.
package app
