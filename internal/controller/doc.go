// Package controller runs the simulated building tasks and owns the shared
// state they coordinate over.
//
// # Architecture
//
// A [Hub] wires together every shared component: the task
// [registry.Registry], the [sensor.Store] holding the latest readings, the
// [ceiling.Manager] guarding the output panel, the [notify.Flags] and
// [notify.Queue] notification paths, and the [panel.Board]. [Hub.Start]
// registers the task roster and launches one goroutine per task;
// [Hub.Stop] cancels them and waits for the group to drain. Display output
// goes through a [Renderer], so the same hub drives the terminal dashboard
// and the headless log-only mode.
//
// # Task roster
//
// Seven tasks run concurrently. The temperature and light tasks oscillate
// their simulated sensors, publish readings, and drive the fan and lamp
// levels on the panel: temperature under the immediate-ceiling claim, light
// under the original-ceiling guard with an unguarded fallback when refused.
// The motion task periodically asserts the shared motion state, which makes
// the light task flash the whole panel instead of its normal update. The
// display task repaints on any update notification, the log drain feeds
// queued records to the renderer, the emergency task trips the overheat
// alert, and the heartbeat blinks to show liveness.
//
// # Live reload
//
// Task cadences, the overheat threshold, and the panel ceiling are read
// from an atomically swapped snapshot on every cycle, so [Hub.ApplyConfig]
// takes effect without a restart. Sizing fixed at construction (queue and
// registry capacity, lock timeout, claim backoff) is not reloadable.
package controller
