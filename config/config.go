// Package config reads dive plans from YAML files.
//
// Loading happens in four steps: defaults, then the file, then environment
// overrides, then validation. The result is a profile.Plan ready to run.
//
// Environment overrides (applied to settings after the file):
//
//	DECOPLAN_GF_LOW, DECOPLAN_GF_HIGH   gradient factors (percent)
//	DECOPLAN_ALTITUDE_FT                site altitude
//	DECOPLAN_LAST_STOP_FT               10 or 20
//	DECOPLAN_DIVE_RMV, DECOPLAN_DECO_RMV surface consumption (cuft/min)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	// ErrRead indicates the plan file could not be read.
	ErrRead = errors.New("config: cannot read plan file")

	// ErrParse indicates malformed YAML.
	ErrParse = errors.New("config: cannot parse plan file")

	// ErrInvalid indicates a plan that fails validation.
	ErrInvalid = errors.New("config: invalid plan")
)

// File is the on-disk plan layout.
type File struct {
	Title    string         `yaml:"title"`
	Water    string         `yaml:"water" validate:"omitempty,oneof=salt fresh"`
	Settings SettingsConfig `yaml:"settings"`
	Gases    []GasConfig    `yaml:"gases" validate:"required,min=1,dive"`
	Dives    []DiveConfig   `yaml:"dives" validate:"required,min=1,dive"`
}

// SettingsConfig mirrors deco.Settings with site altitude in feet.
type SettingsConfig struct {
	GFLow      int          `yaml:"gf_low" validate:"min=15,max=95,ltefield=GFHigh"`
	GFHigh     int          `yaml:"gf_high" validate:"min=15,max=95"`
	AltitudeFt float64      `yaml:"altitude_ft" validate:"min=0"`
	LastStopFt int          `yaml:"last_stop_ft" validate:"oneof=10 20"`
	DiveRMV    float64      `yaml:"rmv_dive" validate:"min=0.3,max=4"`
	DecoRMV    float64      `yaml:"rmv_deco" validate:"min=0.3,max=4"`
	Alarms     AlarmsConfig `yaml:"alarms"`
}

// AlarmsConfig mirrors deco.AlarmSettings.
type AlarmsConfig struct {
	ENDEnabled     bool    `yaml:"end_enabled"`
	ENDThreshold   float64 `yaml:"end_threshold" validate:"min=100,max=200"`
	WOBEnabled     bool    `yaml:"wob_enabled"`
	WOBThreshold   float64 `yaml:"wob_threshold" validate:"min=100,max=200"`
	OxygenNarcotic bool    `yaml:"oxygen_narcotic"`
}

// GasConfig describes one cylinder. Enabled defaults to true.
type GasConfig struct {
	Name       string  `yaml:"name" validate:"required"`
	O2         float64 `yaml:"o2" validate:"gt=0,lte=1,gasmix"`
	He         float64 `yaml:"he" validate:"gte=0,lt=1"`
	MaxPO2     float64 `yaml:"max_po2" validate:"omitempty,gt=0,lte=2"`
	Circuit    string  `yaml:"circuit" validate:"omitempty,oneof=oc cc"`
	TankCuft   float64 `yaml:"tank_cuft" validate:"gte=0"`
	ReservePct float64 `yaml:"reserve_pct" validate:"gte=0,lte=100"`
	Enabled    *bool   `yaml:"enabled"`
}

// DiveConfig is one dive; the surface interval precedes it.
type DiveConfig struct {
	SurfaceIntervalMin float64         `yaml:"surface_interval_min" validate:"gte=0"`
	Segments           []SegmentConfig `yaml:"segments" validate:"required,min=1,dive"`
}

// SegmentConfig is one leg of a dive. Gas refers to a GasConfig by name.
type SegmentConfig struct {
	Depth       float64 `yaml:"depth" validate:"gte=0"`
	Minutes     float64 `yaml:"minutes" validate:"gte=0"`
	Gas         string  `yaml:"gas" validate:"required"`
	AscentRate  float64 `yaml:"ascent_rate" validate:"gte=0"`
	DescentRate float64 `yaml:"descent_rate" validate:"gte=0"`
	Setpoint    float64 `yaml:"setpoint" validate:"omitempty,min=0.4,max=1.6"`
}

// planValidate is the validator instance for plan files.
// Initialized in init() with custom validators.
var planValidate *validator.Validate

func init() {
	planValidate = validator.New()

	_ = planValidate.RegisterValidation("gasmix", validateGasMix)
}

// validateGasMix checks that O2 and He of the enclosing GasConfig sum to at most 1.
func validateGasMix(fl validator.FieldLevel) bool {
	g, ok := fl.Parent().Interface().(GasConfig)
	if !ok {
		return false
	}

	return g.O2+g.He <= 1+1e-9
}

// Default returns a File holding default settings and no gases or dives.
func Default() File {
	return File{
		Water: "salt",
		Settings: SettingsConfig{
			GFLow:      30,
			GFHigh:     85,
			LastStopFt: 20,
			DiveRMV:    0.9,
			DecoRMV:    0.7,
			Alarms: AlarmsConfig{
				ENDThreshold: 100,
				WOBThreshold: 100,
			},
		},
	}
}

// LoadFile reads, overrides and validates the plan file at path.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return Parse(data)
}

// Parse decodes plan YAML on top of Default, applies environment overrides
// and validates the result.
func Parse(data []byte) (File, error) {
	f := Default()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	loadFromEnv(&f.Settings)
	if err := f.Validate(); err != nil {
		return File{}, err
	}

	return f, nil
}

// Validate runs the struct-tag rules.
func (f File) Validate() error {
	if err := planValidate.Struct(f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

func loadFromEnv(s *SettingsConfig) {
	if v := os.Getenv("DECOPLAN_GF_LOW"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			s.GFLow = i
		}
	}
	if v := os.Getenv("DECOPLAN_GF_HIGH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			s.GFHigh = i
		}
	}
	if v := os.Getenv("DECOPLAN_ALTITUDE_FT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.AltitudeFt = f
		}
	}
	if v := os.Getenv("DECOPLAN_LAST_STOP_FT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			s.LastStopFt = i
		}
	}
	if v := os.Getenv("DECOPLAN_DIVE_RMV"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.DiveRMV = f
		}
	}
	if v := os.Getenv("DECOPLAN_DECO_RMV"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.DecoRMV = f
		}
	}
}
