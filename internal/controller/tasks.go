package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/Iron-Ham/hestia/internal/logging"
	"github.com/Iron-Ham/hestia/internal/notify"
	"github.com/Iron-Ham/hestia/internal/panel"
	"github.com/Iron-Ham/hestia/internal/registry"
	"github.com/Iron-Ham/hestia/internal/sensor"
)

// Task identities. Base priorities live in the roster; lower values are
// more urgent.
const (
	TaskEmergency   registry.TaskID = "emergency"
	TaskMotion      registry.TaskID = "motion"
	TaskTemperature registry.TaskID = "temperature"
	TaskLight       registry.TaskID = "light"
	TaskDisplay     registry.TaskID = "display"
	TaskLogger      registry.TaskID = "logger"
	TaskHeartbeat   registry.TaskID = "heartbeat"
)

// Event flags exchanged between tasks.
const (
	FlagTempUpdate  notify.Flag = "temp-update"
	FlagLightUpdate notify.Flag = "light-update"
	FlagMotion      notify.Flag = "motion"
)

// roster lists every task with its base priority, in creation order.
var roster = []struct {
	id   registry.TaskID
	base registry.Priority
}{
	{TaskTemperature, 3},
	{TaskLight, 4},
	{TaskMotion, 2},
	{TaskDisplay, 5},
	{TaskLogger, 6},
	{TaskEmergency, 1},
	{TaskHeartbeat, 7},
}

// Simulated sensor bounds. Temperature moves one degree per cycle between
// its bounds; light moves lightStep per cycle on a 0 (bright) to 100 (dark)
// scale.
const (
	initialTemperature = 20
	maxTemperature     = 40
	initialLight       = 50
	minLight           = 10
	maxLight           = 90
	lightStep          = 5
)

// sleepCtx sleeps for d or until ctx is done, reporting whether the full
// duration elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// runTemperature oscillates the simulated temperature between its bounds,
// publishes each reading, and drives the fan level under the
// immediate-ceiling claim.
func (h *Hub) runTemperature(ctx context.Context) {
	log := h.log.WithTask(string(TaskTemperature))

	temp := initialTemperature
	rising := true

	period := h.conf().ctrl.TemperaturePeriod()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if rising {
			temp++
		} else {
			temp--
		}
		if temp >= maxTemperature {
			rising = false
		}
		if temp <= initialTemperature {
			rising = true
		}

		if err := h.store.Update(ctx, func(r *sensor.Reading) { r.Temperature = temp }); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("reading dropped", "error", err)
		}

		level := panel.FanLevelFor(temp)
		if err := h.fanUpdate(ctx, level); err != nil {
			return
		}

		if !h.queue.TryEnqueue(notify.NewRecord(TaskTemperature, fmt.Sprintf("Temp:%dC Fan:%d", temp, level))) {
			log.Debug("log queue full, record dropped")
		}
		h.flags.Set(TaskDisplay, FlagTempUpdate)

		if p := h.conf().ctrl.TemperaturePeriod(); p != period {
			period = p
			ticker.Reset(p)
		}
	}
}

// fanUpdate applies the fan level inside the immediate-ceiling claim,
// retrying until the claim is granted. The only error is ctx ending while
// waiting.
func (h *Hub) fanUpdate(ctx context.Context, level int) error {
	if err := h.mgr.Claim(ctx, TaskTemperature); err != nil {
		return err
	}
	defer h.mgr.Release(TaskTemperature)
	h.board.Update(func(s *panel.State) { s.FanLevel = level })
	return nil
}

// runLight oscillates the simulated ambient light, publishes each reading,
// and drives the lamp level under the original-ceiling guard. A motion
// detection overrides the cycle with an all-on flash that bypasses the
// guard.
func (h *Hub) runLight(ctx context.Context) {
	log := h.log.WithTask(string(TaskLight))

	light := initialLight
	darkening := true
	motion := false

	period := h.conf().ctrl.LightPeriod()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if darkening {
			light += lightStep
		} else {
			light -= lightStep
		}
		if light >= maxLight {
			darkening = false
		}
		if light <= minLight {
			darkening = true
		}

		// One lock hold publishes the reading and samples the motion state.
		// On a lock timeout the previous observation stands; stale motion is
		// tolerated here.
		err := h.store.Update(ctx, func(r *sensor.Reading) {
			r.Light = light
			motion = r.Motion
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("reading dropped", "error", err)
		}

		level := panel.LampLevelFor(light)
		if motion {
			if !h.flashOverride(ctx) {
				return
			}
		} else {
			h.lampUpdate(level, log)
		}

		if !h.queue.TryEnqueue(notify.NewRecord(TaskLight, fmt.Sprintf("Light:%d Level:%d", light, level))) {
			log.Debug("log queue full, record dropped")
		}
		h.flags.Set(TaskDisplay, FlagLightUpdate)

		if p := h.conf().ctrl.LightPeriod(); p != period {
			period = p
			ticker.Reset(p)
		}
	}
}

// flashOverride lights the whole panel for the configured flash window,
// bypassing the ceiling guard, then restores it. Reports false when ctx
// ended mid-flash.
func (h *Hub) flashOverride(ctx context.Context) bool {
	h.board.Update(func(s *panel.State) { s.Flash = true })
	ok := sleepCtx(ctx, h.conf().ctrl.MotionFlash())
	h.board.Update(func(s *panel.State) { s.Flash = false })
	return ok
}

// lampUpdate applies the lamp level under the panel ceiling when admitted,
// and falls back to an unguarded write when refused. The panel still
// updates either way; refusal only costs the exclusion.
func (h *Hub) lampUpdate(level int, log *logging.Logger) {
	res := h.conf().panel
	if h.mgr.Raise(TaskLight, res) {
		h.board.Update(func(s *panel.State) { s.LampLevel = level })
		h.mgr.Lower(TaskLight, res)
		return
	}
	log.Debug("ceiling refused, unguarded update", "ceiling", res.String())
	h.board.Update(func(s *panel.State) { s.LampLevel = level })
}

// runMotion simulates a periodic motion detector: idle, assert the shared
// motion state, notify the observers, hold, clear.
func (h *Hub) runMotion(ctx context.Context) {
	log := h.log.WithTask(string(TaskMotion))

	for {
		if !sleepCtx(ctx, h.conf().ctrl.MotionIdle()) {
			return
		}

		if err := h.store.Update(ctx, func(r *sensor.Reading) { r.Motion = true }); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("motion assert dropped", "error", err)
		}
		h.flags.Set(TaskLight, FlagMotion)
		h.flags.Set(TaskDisplay, FlagMotion)

		if !sleepCtx(ctx, h.conf().ctrl.MotionHold()) {
			return
		}

		if err := h.store.Update(ctx, func(r *sensor.Reading) { r.Motion = false }); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("motion clear dropped", "error", err)
		}
	}
}

// runDisplay waits for any update notification, then renders a consistent
// snapshot of the readings and the panel. The wait result is ignored: a
// timeout repaints just the same, so a missed flag costs at most one wait
// period of staleness.
func (h *Hub) runDisplay(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		h.flags.Wait(ctx, TaskDisplay, h.conf().ctrl.DisplayWait(),
			FlagTempUpdate, FlagLightUpdate, FlagMotion)

		reading, err := h.store.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		h.rend.RenderReadings(reading, h.board.Snapshot())
	}
}

// runLogDrain pulls records off the bounded queue and hands them to the
// renderer, idling briefly after an empty wait.
func (h *Hub) runLogDrain(ctx context.Context) {
	for {
		rec, ok := h.queue.Dequeue(ctx, h.conf().ctrl.LoggerWait())
		if ok {
			h.rend.RenderLog(rec)
			continue
		}
		if ctx.Err() != nil {
			return
		}
		if !sleepCtx(ctx, h.conf().ctrl.LoggerIdle()) {
			return
		}
	}
}

// runEmergency polls the temperature against the overheat threshold and
// drives the alert on transitions. A missed lock skips the check rather
// than stalling the most urgent task.
func (h *Hub) runEmergency(ctx context.Context) {
	log := h.log.WithTask(string(TaskEmergency))

	active := false
	period := h.conf().ctrl.EmergencyPeriod()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		reading, err := h.store.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}

		overheat := reading.Temperature > h.conf().ctrl.OverheatCelsius
		if overheat != active {
			active = overheat
			h.board.Update(func(s *panel.State) { s.Alert = active })
			h.rend.RenderAlert(active)
			if active {
				log.Warn("overheat", "temp_c", reading.Temperature)
			} else {
				log.Info("overheat cleared", "temp_c", reading.Temperature)
			}
		}

		if p := h.conf().ctrl.EmergencyPeriod(); p != period {
			period = p
			ticker.Reset(p)
		}
	}
}

// runHeartbeat blinks the heartbeat indicator: a short on pulse, a long off
// pause. It takes no locks and no ceiling; it exists to show liveness.
func (h *Hub) runHeartbeat(ctx context.Context) {
	for {
		h.board.Update(func(s *panel.State) { s.Heartbeat = true })
		if !sleepCtx(ctx, h.conf().ctrl.HeartbeatOn()) {
			h.board.Update(func(s *panel.State) { s.Heartbeat = false })
			return
		}
		h.board.Update(func(s *panel.State) { s.Heartbeat = false })
		if !sleepCtx(ctx, h.conf().ctrl.HeartbeatOff()) {
			return
		}
	}
}
