// Package ceiling serializes access to the protected panel-update region
// through two alternative priority-ceiling disciplines.
//
// Both disciplines share one [Manager] and one lock over the same state pair:
// the current owner (immediate discipline) and the current system ceiling
// (original discipline). Neither discipline touches scheduler priorities;
// the ceiling effects are simulated through admission checks, which is the
// point of the exercise.
//
// # Immediate-Ceiling Discipline
//
// The caller takes the resource and with it, conceptually, the resource's
// ceiling: [Manager.TryClaim] records the caller as owner if and only if no
// owner is recorded, and fails otherwise, including for the current owner;
// the protocol is not reentrant. [Manager.Claim] wraps TryClaim in a retry
// loop with a configurable backoff; it is the one logically unbounded wait
// in the system, bounded in practice by the caller's context. Releases by
// anyone but the owner are no-ops. No queueing or fairness is provided;
// retries are unordered and starvation is an accepted property of the model.
//
// # Original-Ceiling Discipline
//
// The caller must already dominate the ceiling before it may enter:
// [Manager.Raise] grants access if and only if the caller's base priority is
// at least as urgent as the resource's ceiling AND the system ceiling is
// unset or the caller dominates it too. On grant the resource's ceiling is
// recorded as the system ceiling; [Manager.Lower] clears it only when the
// recorded ceiling matches the resource being released. A refused caller
// gets no retry loop at this layer; callers pick their own fallback. A task
// whose base priority never dominates the resource ceiling is refused on
// every cycle.
//
// # Priority Convention
//
// Lower numeric priority values are more urgent; every comparison goes
// through [registry.Priority.AtLeast]. Base priorities are resolved through
// a [PriorityLookup] at call time, so a task unknown to the registry is
// refused rather than granted by accident.
//
// # Failure Semantics
//
// Acquisition failures are booleans, ordinary control flow, never errors to
// escalate. The protected region is never entered on failure. The flip side
// is an obligation on callers: a task that acquired MUST release on every
// path, or it starves every other producer.
//
// # Thread Safety
//
// All [Manager] methods are safe for concurrent use; one internal mutex
// guards the owner/ceiling pair.
package ceiling
