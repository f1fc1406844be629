// Package registry tracks task identities and their static base priorities.
//
// Every task registers once at startup with an identity and a base priority.
// The registry is a pure lookup table afterwards: the ceiling manager resolves
// a caller's priority through it on every original-ceiling admission check,
// and the dashboard reads the roster for display.
//
// # Priority Convention
//
// Lower numeric values are more urgent, mirroring the usual real-time
// convention. Because the scale is inverted, raw comparisons are easy to get
// backwards; [Priority] wraps the integer and exposes [Priority.AtLeast] so
// call sites state intent instead of direction. The zero value [None] stands
// for "never registered" and is worse than every real priority.
//
// # Basic Usage
//
//	reg := registry.New()
//
//	// Register tasks at startup
//	err := reg.Register("temperature", 3)
//
//	// Resolve a priority later; unknown tasks yield None
//	prio := reg.BasePriority("temperature")
//
// # Capacity
//
// The registry holds at most a fixed number of tasks (default
// [DefaultCapacity]). Registering beyond that returns [ErrRegistryFull]
// rather than silently dropping the entry; callers treat it as non-fatal,
// since an unregistered task simply resolves to [None] and fails admission
// checks from then on.
//
// # Thread Safety
//
// All [Registry] methods are safe for concurrent use via an internal
// sync.RWMutex.
package registry
