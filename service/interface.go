// Package service runs long-lived subsystems in dependency order.
//
// The audio player, terminal desktop, layout engine and UDP command listener
// each own goroutines or OS resources. A Hub initializes and starts them so that
// every service comes up after the services it names as dependencies, and stops
// them in the reverse order.
package service

// Service is a subsystem managed by a Hub
//
// Lifecycle: construct, Register with args, Init(args...), Start, Stop
type Service interface {
	// Name is the unique key other services list as a dependency
	Name() string

	// Dependencies lists services that must be started first and stopped last
	Dependencies() []string

	// Init applies the args given at registration
	Init(args ...any) error

	// Start launches background work, all services are initialized by then
	Start() error

	// Stop halts background work and releases resources
	// Must be idempotent and safe on a service that was initialized but never started
	Stop() error
}
