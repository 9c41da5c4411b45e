package service

// Service is a background subsystem owning long-lived resources: sockets,
// the audio speaker
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration from the loaded config and flags
//  3. Start() - bind resources, launch goroutines
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name is the key the service is registered and looked up under
	Name() string

	// Init configures the service; args are service-specific
	Init(args ...any) error

	// Start runs after every registered service initialized
	Start() error

	// Stop halts the service; must be idempotent
	Stop() error
}
