package config

import "fmt"

// StageLevel is one difficulty tier above the first.
type StageLevel struct {
	Above float64 `yaml:"above"` // Entered once the score is strictly greater than this
	Speed float64 `yaml:"speed"` // Obstacle speed magnitude while in this stage
}

// StageTable maps scores to stages and stages to obstacle speed.
// Stage 1 runs at BaseSpeed; stage k+1 uses Levels[k-1].
type StageTable struct {
	BaseSpeed float64      `yaml:"base_speed"`
	Levels    []StageLevel `yaml:"levels"`
}

// MaxStage returns the highest reachable stage number.
func (t StageTable) MaxStage() int {
	return len(t.Levels) + 1
}

// Speed returns the obstacle speed magnitude for a stage.
func (t StageTable) Speed(stage int) float64 {
	if stage <= 1 || len(t.Levels) == 0 {
		return t.BaseSpeed
	}
	idx := min(stage-2, len(t.Levels)-1)
	return t.Levels[idx].Speed
}

// Next returns the stage that follows current for the given score, and whether
// a transition happened. At most one stage is advanced per call.
func (t StageTable) Next(current int, score float64) (int, bool) {
	if current < 1 || current >= t.MaxStage() {
		return current, false
	}
	if score > t.Levels[current-1].Above {
		return current + 1, true
	}
	return current, false
}

func (t StageTable) validate() error {
	prev := -1.0
	for i, lvl := range t.Levels {
		if lvl.Above <= prev {
			return fmt.Errorf("config: stages.levels[%d].above must increase, got %v after %v", i, lvl.Above, prev)
		}
		if lvl.Speed <= 0 {
			return fmt.Errorf("config: stages.levels[%d].speed must be positive, got %v", i, lvl.Speed)
		}
		prev = lvl.Above
	}
	return nil
}
