// Package config holds the run configuration assembled from CLI flags.
package config

// Config is the parsed configuration for one emulator run.
type Config struct {
	// SourcePath is the path to the assembly source file (the CLI's sole
	// positional argument).
	SourcePath string
	// Trace prints the register/flags snapshot after every instruction.
	Trace bool
	// MaxSteps bounds how many instructions are executed before the driver
	// gives up; 0 means unbounded. This guard lives in the driver, not in
	// the executor, since the core makes no scheduling or timeout guarantees.
	MaxSteps int
}
