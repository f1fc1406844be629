package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Iron-Ham/hestia/internal/ceiling"
	"github.com/Iron-Ham/hestia/internal/config"
	"github.com/Iron-Ham/hestia/internal/logging"
	"github.com/Iron-Ham/hestia/internal/notify"
	"github.com/Iron-Ham/hestia/internal/panel"
	"github.com/Iron-Ham/hestia/internal/registry"
	"github.com/Iron-Ham/hestia/internal/sensor"
)

// Config holds the configuration needed to create a Hub.
type Config struct {
	// Renderer receives display output from the display, log drain, and
	// emergency tasks. Required.
	Renderer Renderer

	// Logger receives diagnostic logging. Optional; defaults to a no-op
	// logger when nil.
	Logger *logging.Logger

	// Conf supplies cadences, thresholds, and sizing. Optional; defaults
	// to the built-in configuration when nil.
	Conf *config.Config
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	if c.Renderer == nil {
		return errors.New("controller: Renderer is required")
	}
	return nil
}

// tunables is the snapshot of live-reloadable settings. Tasks load it
// through an atomic pointer at every cycle, so a swapped snapshot is
// observed without locking.
type tunables struct {
	ctrl  config.ControllerConfig
	panel registry.Priority
}

func newTunables(conf *config.Config) *tunables {
	return &tunables{
		ctrl:  conf.Controller,
		panel: registry.Priority(conf.Ceiling.PanelCeiling),
	}
}

// Hub owns the shared components and supervises the task goroutines.
type Hub struct {
	mu      sync.RWMutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	tun atomic.Pointer[tunables]

	log   *logging.Logger
	rend  Renderer
	reg   *registry.Registry
	store *sensor.Store
	mgr   *ceiling.Manager
	flags *notify.Flags
	queue *notify.Queue
	board *panel.Board
}

// NewHub creates a Hub and its shared components from the given
// configuration.
func NewHub(cfg Config) (*Hub, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logging.NopLogger()
	}
	conf := cfg.Conf
	if conf == nil {
		conf = config.Default()
	}
	if errs := conf.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("controller: invalid configuration: %w", config.ValidationErrors(errs))
	}

	reg := registry.New(registry.WithCapacity(conf.Registry.Capacity))
	h := &Hub{
		log:  log.WithComponent("hub"),
		rend: cfg.Renderer,
		reg:  reg,
		store: sensor.NewStore(
			sensor.WithLockTimeout(conf.Sensors.LockTimeout()),
			sensor.WithInitial(sensor.Reading{Temperature: initialTemperature, Light: initialLight}),
		),
		mgr:   ceiling.New(reg, ceiling.WithBackoff(conf.Ceiling.ClaimBackoff())),
		flags: notify.NewFlags(),
		queue: notify.NewQueue(conf.Notify.QueueCapacity),
		board: panel.NewBoard(),
	}
	h.tun.Store(newTunables(conf))
	return h, nil
}

// Registry returns the task registry.
func (h *Hub) Registry() *registry.Registry {
	return h.reg
}

// Sensors returns the shared sensor store.
func (h *Hub) Sensors() *sensor.Store {
	return h.store
}

// Ceiling returns the ceiling manager guarding the output panel.
func (h *Hub) Ceiling() *ceiling.Manager {
	return h.mgr
}

// Flags returns the event flag exchange.
func (h *Hub) Flags() *notify.Flags {
	return h.flags
}

// Queue returns the bounded log record queue.
func (h *Hub) Queue() *notify.Queue {
	return h.queue
}

// Board returns the output panel.
func (h *Hub) Board() *panel.Board {
	return h.board
}

// Start registers the task roster and launches every task goroutine. It
// returns an error if the hub is already running.
func (h *Hub) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return errors.New("controller: hub already started")
	}

	for _, t := range roster {
		if err := h.reg.Register(t.id, t.base); err != nil {
			h.log.Warn("task registration failed", "task", string(t.id), "error", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.started = true

	h.launch(ctx, h.runTemperature)
	h.launch(ctx, h.runLight)
	h.launch(ctx, h.runMotion)
	h.launch(ctx, h.runDisplay)
	h.launch(ctx, h.runLogDrain)
	h.launch(ctx, h.runEmergency)
	h.launch(ctx, h.runHeartbeat)

	h.log.Info("hub started", "tasks", len(roster))
	return nil
}

func (h *Hub) launch(ctx context.Context, run func(context.Context)) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		run(ctx)
	}()
}

// Stop cancels every task and waits for the group to exit. It is safe to
// call multiple times.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.started {
		return
	}

	h.cancel()
	h.wg.Wait()

	h.cancel = nil
	h.started = false
	h.log.Info("hub stopped")
}

// Running reports whether the hub has been started and not yet stopped.
func (h *Hub) Running() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.started
}

// ApplyConfig installs the live-reloadable settings from conf: the task
// cadences, the overheat threshold, and the panel ceiling. Running tasks
// observe the new values on their next cycle. Sizing fixed at construction
// (queue and registry capacity, lock timeout, claim backoff) is unaffected;
// a restart picks those up.
func (h *Hub) ApplyConfig(conf *config.Config) error {
	if conf == nil {
		return errors.New("controller: nil configuration")
	}
	if errs := conf.Validate(); len(errs) > 0 {
		return fmt.Errorf("controller: invalid configuration: %w", config.ValidationErrors(errs))
	}

	h.tun.Store(newTunables(conf))
	h.log.Info("configuration applied",
		"temperature_period", conf.Controller.TemperaturePeriod(),
		"light_period", conf.Controller.LightPeriod(),
		"overheat_celsius", conf.Controller.OverheatCelsius,
		"panel_ceiling", conf.Ceiling.PanelCeiling)
	return nil
}

// conf returns the current live-reloadable snapshot.
func (h *Hub) conf() *tunables {
	return h.tun.Load()
}
