package astroprop

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the propagation setup read from a TOML file.
type Config struct {
	Integrator  IntegratorConfig
	Gravity     GravityConfig
	Drag        DragConfig
	SRP         SRPConfig
	ThirdBody   ThirdBodyConfig
	Checkpoints int
}

// IntegratorConfig selects the propagator.
type IntegratorConfig struct {
	Method    string // a tableau name, "rk4" or "kepler"
	Tolerance float64
	Step      float64 // seconds
}

// GravityConfig sets the central body gravity. A degree under two is point mass gravity.
type GravityConfig struct {
	Degree, Order int
}

// DragConfig sets the atmospheric drag.
type DragConfig struct {
	Enabled     bool
	Mass, Area  float64
	Cd          float64
	CosinePower float64
}

// SRPConfig sets the solar radiation pressure.
type SRPConfig struct {
	Enabled    bool
	Mass, Area float64
	Cr         float64
}

// ThirdBodyConfig sets the lunisolar perturbations.
type ThirdBodyConfig struct {
	Moon, Sun bool
}

// Collaborators are the read-only tables and models the forces are built from.
type Collaborators struct {
	Field      GravityField
	Frame      BodyFrame
	Atmosphere Atmosphere
	Ephemeris  Ephemeris
}

// DefaultCollaborators returns the shipped EGM96, Harris-Priester and Meeus models.
func DefaultCollaborators() Collaborators {
	return Collaborators{EGM96Degree4(), EarthRotation{}, HarrisPriester(), MeeusEphemeris{}}
}

// NewConfigViper returns a viper instance with the configuration defaults, reading the
// environment variables prefixed with ASTROPROP_ (e.g. ASTROPROP_INTEGRATOR_TOLERANCE).
func NewConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("astroprop")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("integrator.method", DormandPrince54.Name)
	v.SetDefault("integrator.tolerance", DefaultTolerance)
	v.SetDefault("integrator.step", DefaultStepSize)
	v.SetDefault("gravity.degree", 0)
	v.SetDefault("gravity.order", 0)
	v.SetDefault("drag.enabled", false)
	v.SetDefault("drag.mass", 1000.0)
	v.SetDefault("drag.area", 1.0)
	v.SetDefault("drag.cd", 2.2)
	v.SetDefault("drag.cosine_power", DefaultCosinePower)
	v.SetDefault("srp.enabled", false)
	v.SetDefault("srp.mass", 1000.0)
	v.SetDefault("srp.area", 1.0)
	v.SetDefault("srp.cr", 1.2)
	v.SetDefault("thirdbody.moon", false)
	v.SetDefault("thirdbody.sun", false)
	v.SetDefault("checkpoints", DefaultCheckpointCapacity)
	return v
}

// LoadConfig reads the TOML configuration at path. An empty path only uses the defaults
// and the environment.
func LoadConfig(path string) (Config, error) {
	v := NewConfigViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return ConfigFromViper(v)
}

// ConfigFromViper extracts and validates the configuration from a viper instance.
func ConfigFromViper(v *viper.Viper) (Config, error) {
	c := Config{
		Integrator: IntegratorConfig{
			Method:    v.GetString("integrator.method"),
			Tolerance: v.GetFloat64("integrator.tolerance"),
			Step:      v.GetFloat64("integrator.step"),
		},
		Gravity: GravityConfig{v.GetInt("gravity.degree"), v.GetInt("gravity.order")},
		Drag: DragConfig{
			Enabled:     v.GetBool("drag.enabled"),
			Mass:        v.GetFloat64("drag.mass"),
			Area:        v.GetFloat64("drag.area"),
			Cd:          v.GetFloat64("drag.cd"),
			CosinePower: v.GetFloat64("drag.cosine_power"),
		},
		SRP: SRPConfig{
			Enabled: v.GetBool("srp.enabled"),
			Mass:    v.GetFloat64("srp.mass"),
			Area:    v.GetFloat64("srp.area"),
			Cr:      v.GetFloat64("srp.cr"),
		},
		ThirdBody:   ThirdBodyConfig{v.GetBool("thirdbody.moon"), v.GetBool("thirdbody.sun")},
		Checkpoints: v.GetInt("checkpoints"),
	}
	return c, c.Validate()
}

// Validate returns an error if the configuration cannot build a propagator.
func (c Config) Validate() error {
	method := strings.ToLower(c.Integrator.Method)
	if method != "kepler" && TableauByName(method) == nil {
		return fmt.Errorf("unknown integration method `%s`", c.Integrator.Method)
	}
	if c.Integrator.Step <= 0 {
		return fmt.Errorf("integrator step must be positive, got %f", c.Integrator.Step)
	}
	if c.Drag.Enabled && c.Drag.Mass <= 0 {
		return fmt.Errorf("drag requires a positive mass, got %f", c.Drag.Mass)
	}
	if c.SRP.Enabled && c.SRP.Mass <= 0 {
		return fmt.Errorf("SRP requires a positive mass, got %f", c.SRP.Mass)
	}
	if c.Checkpoints <= 0 {
		return fmt.Errorf("checkpoint capacity must be positive, got %d", c.Checkpoints)
	}
	return nil
}

// ForceModel builds the force model described by this configuration.
func (c Config) ForceModel(col Collaborators) *ForceModel {
	fm := NewForceModel()
	if c.Gravity.Degree >= 2 {
		fm.SetCentralGravity(NewEarthGravity(col.Field, col.Frame, c.Gravity.Degree, c.Gravity.Order))
	} else {
		fm.SetCentralGravity(NewGravity(col.Field.Mu()))
	}
	if c.ThirdBody.Moon || c.ThirdBody.Sun {
		fm.SetThirdBody(NewThirdBodyGravity(col.Ephemeris, c.ThirdBody.Moon, c.ThirdBody.Sun))
	}
	if c.SRP.Enabled {
		fm.SetSRP(NewSolarRadiationPressure(col.Ephemeris, c.SRP.Mass, c.SRP.Area, c.SRP.Cr))
	}
	if c.Drag.Enabled {
		fm.SetDrag(NewAtmosphericDrag(col.Atmosphere, col.Frame, col.Ephemeris, c.Drag.Mass, c.Drag.Area, c.Drag.Cd, c.Drag.CosinePower))
	}
	return fm
}

// Propagator builds the propagator described by this configuration, which is validated
// first. The Kepler propagator ignores the force model except for its central body.
func (c Config) Propagator(initial State, fm *ForceModel) (Propagator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	method := strings.ToLower(c.Integrator.Method)
	switch {
	case method == "kepler":
		p := NewKeplerPropagator(initial, CentralMu(fm))
		p.SetCheckpointCapacity(c.Checkpoints)
		return p, nil
	case method == ClassicRK4.Name:
		p := NewRungeKutta4(initial, fm, c.Integrator.Step)
		p.SetCheckpointCapacity(c.Checkpoints)
		return p, nil
	default:
		p := NewPreciseRungeKuttaAdaptive(initial, fm, TableauByName(method), c.Integrator.Tolerance, c.Integrator.Step)
		p.SetCheckpointCapacity(c.Checkpoints)
		return p, nil
	}
}
