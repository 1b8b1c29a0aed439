// Package roster implements the duty roster generation engine: active-date
// computation, workload counters, the driver and crew selection algorithms,
// the special rotation rules and the append-only decision log.
//
// The engine is a pure in-memory computation. Given the same Config and the
// same random seed it reproduces the exact same assignments, counters and
// decision log.
package roster
