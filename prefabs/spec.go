package prefabs

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/milk9111/shadowmaze/ecs/component"
	"gopkg.in/yaml.v3"
)

const (
	PursuerFile = "pursuer.yaml"
	TargetFile  = "target.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type BodySpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (b BodySpec) Body() component.Body {
	return component.Body{Width: b.Width, Height: b.Height}
}

// PursuerSpec tunes every pursuer in a run.
type PursuerSpec struct {
	Name             string             `yaml:"name"`
	Variant          string             `yaml:"variant"`
	Difficulty       string             `yaml:"difficulty"`
	Speeds           map[string]float64 `yaml:"speeds"`
	SightDistance    float64            `yaml:"sight_distance"`
	SightSpread      float64            `yaml:"sight_spread"`
	SampleStride     int                `yaml:"sample_stride"`
	MemoryWindowMS   int                `yaml:"memory_window_ms"`
	StrictRelaxation bool               `yaml:"strict_relaxation"`
	ContactDamage    float32            `yaml:"contact_damage"`
	Body             BodySpec           `yaml:"body"`
	RoamScript       string             `yaml:"roam_script"`
}

func LoadPursuerSpec() (*PursuerSpec, error) {
	spec, err := LoadSpec[PursuerSpec](PursuerFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *PursuerSpec) Validate() error {
	switch {
	case s.Variant != "" && s.Variant != string(component.VariantPursue) && s.Variant != string(component.VariantSight):
		return fmt.Errorf("prefabs: %s: unknown variant %q (want %s or %s)", PursuerFile, s.Variant, component.VariantPursue, component.VariantSight)
	case !finite(s.SightDistance):
		return fmt.Errorf("prefabs: %s: sight_distance must be finite", PursuerFile)
	case !finite(s.SightSpread):
		return fmt.Errorf("prefabs: %s: sight_spread must be finite", PursuerFile)
	case s.SightDistance < 0:
		return fmt.Errorf("prefabs: %s: sight_distance must not be negative", PursuerFile)
	case s.SampleStride < 0:
		return fmt.Errorf("prefabs: %s: sample_stride must not be negative", PursuerFile)
	case s.MemoryWindowMS < 0:
		return fmt.Errorf("prefabs: %s: memory_window_ms must not be negative", PursuerFile)
	case s.ContactDamage < 0:
		return fmt.Errorf("prefabs: %s: contact_damage must not be negative", PursuerFile)
	}
	for name, speed := range s.Speeds {
		if speed < 0 || !finite(speed) {
			return fmt.Errorf("prefabs: %s: speed %q must be finite and not negative", PursuerFile, name)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Tuning converts the spec, leaving unset fields at their defaults.
func (s *PursuerSpec) Tuning() component.Tuning {
	t := component.DefaultTuning()
	if s.SightDistance > 0 {
		t.SightDistance = s.SightDistance
	}
	if s.SightSpread != 0 {
		t.SightSpread = s.SightSpread
	}
	if s.SampleStride > 0 {
		t.SampleStride = s.SampleStride
	}
	if s.MemoryWindowMS > 0 {
		t.MemoryWindow = time.Duration(s.MemoryWindowMS) * time.Millisecond
	}
	t.StrictRelaxation = s.StrictRelaxation
	return t
}

// Speed returns the movement speed for a difficulty. An empty name uses the
// spec's default difficulty.
func (s *PursuerSpec) Speed(difficulty string) (float64, error) {
	name := strings.ToLower(strings.TrimSpace(difficulty))
	if name == "" {
		name = strings.ToLower(s.Difficulty)
	}
	speed, ok := s.Speeds[name]
	if !ok {
		known := make([]string, 0, len(s.Speeds))
		for k := range s.Speeds {
			known = append(known, k)
		}
		sort.Strings(known)
		return 0, fmt.Errorf("prefabs: unknown difficulty %q (have %s)", name, strings.Join(known, ", "))
	}
	return speed, nil
}

func (s *PursuerSpec) VariantOrDefault() component.Variant {
	if s.Variant == "" {
		return component.VariantSight
	}
	return component.Variant(s.Variant)
}

type BeamSpec struct {
	Range   float64 `yaml:"range"`
	Charges int     `yaml:"charges"`
}

// TargetSpec describes the hunted entity.
type TargetSpec struct {
	Name   string   `yaml:"name"`
	Health float32  `yaml:"health"`
	Body   BodySpec `yaml:"body"`
	Beam   BeamSpec `yaml:"beam"`
}

func LoadTargetSpec() (*TargetSpec, error) {
	spec, err := LoadSpec[TargetSpec](TargetFile)
	if err != nil {
		return nil, err
	}
	if spec.Health <= 0 {
		spec.Health = component.DefaultTargetHealth
	}
	if spec.Beam.Range <= 0 {
		spec.Beam.Range = component.DefaultBeamRange
	}
	return &spec, nil
}
