package cli

import "ptx/internal/config"

// Flags holds command-line flags
type Flags struct {
	Processors int
	Deferred   bool
	Migrate    bool
	NoFresh    bool
	TestPath   string
	NameFilter string
	Theories   bool
	FailFast   bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors: f.Processors,
		Deferred:   f.Deferred,
		Migrate:    f.Migrate,
		NoFresh:    f.NoFresh,
		TestPath:   f.TestPath,
		NameFilter: f.NameFilter,
		Theories:   f.Theories,
		FailFast:   f.FailFast,
	}
}
