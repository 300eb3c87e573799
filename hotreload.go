// hotreload.go: dynamic reload of the interner's observability knobs
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// ObservabilityConfig holds the runtime-tunable knobs a running interner
// exposes to hot-reload. Every field here affects observability or
// drain-wait scheduling only: the data model (table layout, arena
// geometry, the epoch protocol's correctness) takes no configuration at
// all and is never touched by a reload, matching the core's
// no-configuration guarantee.
type ObservabilityConfig struct {
	// DrainSpinThreshold is the number of tight spins the writer attempts
	// while waiting for readers to drain before yielding the CPU with
	// runtime.Gosched. Default: 100.
	DrainSpinThreshold int64

	// MetricsEnabled toggles whether BasicMetrics observations are
	// recorded; when false, ObserveLookup/ObserveDrain/ObserveGrow calls
	// are skipped entirely via a NoOpMetrics swap.
	MetricsEnabled bool
}

// DefaultObservabilityConfig returns the configuration an Interner starts
// with absent any hot-reload file.
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		DrainSpinThreshold: 100,
		MetricsEnabled:     false,
	}
}

// HotConfig watches a configuration file with Argus and applies changes
// to an Interner's observability knobs as they're detected. It never
// touches the interner's data structures directly; only spin-wait
// tuning and metrics wiring are dynamic.
type HotConfig struct {
	in      *Interner
	watcher *argus.Watcher
	mu      sync.RWMutex
	config  ObservabilityConfig

	// OnReload is called after a configuration file change has been
	// applied. Optional; must be fast and non-blocking.
	OnReload func(old, new ObservabilityConfig)
}

// HotConfigOptions configures hot reload behavior for NewHotConfig.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch. Supports
	// JSON, YAML, TOML, HCL, INI, and Properties formats (anything Argus
	// can parse).
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	OnReload func(old, new ObservabilityConfig)
}

// NewHotConfig creates a hot-reloadable observability configuration for
// in and starts watching opts.ConfigPath immediately.
//
// Example configuration file (YAML):
//
//	sinter:
//	  drain_spin_threshold: 200
//	  metrics_enabled: true
func NewHotConfig(in *Interner, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("sinter: config_path is required")
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	hc := &HotConfig{
		in:       in,
		OnReload: opts.OnReload,
		config:   DefaultObservabilityConfig(),
	}

	argusConfig := argus.Config{PollInterval: opts.PollInterval}
	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher
	return hc, nil
}

// Start begins watching the configuration file.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// GetConfig returns the currently active observability configuration.
func (hc *HotConfig) GetConfig() ObservabilityConfig {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config
}

func (hc *HotConfig) handleConfigChange(data map[string]interface{}) {
	hc.mu.Lock()
	old := hc.config
	next := parseObservabilityConfig(data)
	hc.config = next
	hc.mu.Unlock()

	hc.applyChanges(next)

	if hc.OnReload != nil {
		hc.OnReload(old, next)
	}
}

func (hc *HotConfig) applyChanges(cfg ObservabilityConfig) {
	hc.in.drainSpinThreshold.Store(cfg.DrainSpinThreshold)
	if cfg.MetricsEnabled {
		if _, isBasic := hc.in.metricsCollector().(*BasicMetrics); !isBasic {
			hc.in.setMetrics(NewBasicMetrics())
		}
	} else {
		hc.in.setMetrics(NoOpMetrics{})
	}
}

func parsePositiveInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return int64(v), true
		}
	case int64:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int64(v), true
		}
	}
	return 0, false
}

func parseBool(value interface{}) (bool, bool) {
	b, ok := value.(bool)
	return b, ok
}

func parseObservabilityConfig(data map[string]interface{}) ObservabilityConfig {
	cfg := DefaultObservabilityConfig()

	section, ok := data["sinter"].(map[string]interface{})
	if !ok {
		if _, hasKey := data["drain_spin_threshold"]; hasKey {
			section = data
		} else {
			return cfg
		}
	}

	if v, ok := parsePositiveInt64(section["drain_spin_threshold"]); ok {
		cfg.DrainSpinThreshold = v
	}
	if v, ok := parseBool(section["metrics_enabled"]); ok {
		cfg.MetricsEnabled = v
	}

	return cfg
}
