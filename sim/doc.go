// Package sim provides the discrete-event simulation engine for the airport
// security checkpoint model.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - clock.go: simulated time and the (time, sequence)-ordered event set
//   - resource.go: capacity-limited servers with FIFO wait queues
//   - passenger.go: the passenger state machine (ARRIVED → … → DONE)
//   - checkpoint.go: ID-check pool, scanners, shortest-queue scanner choice
//   - replication.go / sweep.go: seeded runs, averaging and staffing sweeps
//
// # Concurrency
//
// A replication is single-threaded. Passengers are logical processes: each
// suspends on a Resource grant or a timeout and resumes when the Clock
// delivers the matching event. Nothing inside a replication is locked.
// Replications share no state, so RunStaffingLevel may run several of them
// on separate goroutines (Config.Parallelism) without changing results.
//
// # Sub-packages
//   - sim/trace/: optional lifecycle and scanner-choice recording
//   - sim/report/: text, CSV, JSON and YAML implementations of Reporter
package sim
