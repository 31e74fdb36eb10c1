package config

import "math"

// DifficultyManager turns level step caps into engine step budgets.
type DifficultyManager struct {
	cfg             DifficultyConfig
	defaultMaxSteps int
	override        int
}

// NewDifficultyManager creates a new difficulty manager from the loaded config.
func NewDifficultyManager(cfg SokobanConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:             cfg.Difficulty,
		defaultMaxSteps: cfg.Rules.DefaultMaxSteps,
	}
}

// SetPreset changes the active preset.
func (d *DifficultyManager) SetPreset(preset DifficultyPreset) {
	d.cfg.Preset = preset
}

// Preset returns the active preset.
func (d *DifficultyManager) Preset() DifficultyPreset {
	return d.cfg.Preset
}

// SetOverride forces every budget to n steps, ignoring level caps and presets.
// 0 clears the override.
func (d *DifficultyManager) SetOverride(n int) {
	if n < 0 {
		n = 0
	}
	d.override = n
}

// StepBudget returns the engine maxSteps for a level whose file declares levelMax
// (0 when it declares none). The result 0 means unlimited.
func (d *DifficultyManager) StepBudget(levelMax int) int {
	if d.override > 0 {
		return d.override
	}

	base := levelMax
	if base <= 0 {
		base = d.defaultMaxSteps
	}
	if base <= 0 {
		return 0
	}

	if IsFixedPreset(d.cfg.Preset) {
		return base
	}

	scale := d.cfg.Scaling.ScaleFor(d.cfg.Preset)
	if scale <= 0 {
		return 0
	}
	budget := int(math.Ceil(float64(base) * scale))
	if budget < 1 {
		budget = 1
	}
	return budget
}
