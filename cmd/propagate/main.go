package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ChristopherRabotin/astroprop"
	kitlog "github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

// Scenario constants
const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02 15:04:05"
)

var (
	scenario string
	debug    = flag.Bool("debug", false, "verbose debug")
	events   = flag.Bool("events", false, "log the next nodes and apsides")
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "propagation scenario TOML file")
}

// burn is a maneuver of the scenario, centered offset seconds after the initial epoch.
type burn struct {
	Offset                      float64
	Radial, Intrack, Crosstrack float64
	DurationRate                float64 `mapstructure:"duration_rate"`
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	if scenario == defaultScenario {
		fatal(logger, fmt.Errorf("no scenario provided"))
	}
	if !strings.HasSuffix(scenario, ".toml") {
		scenario += ".toml"
	}

	cfg, err := astroprop.LoadConfig(scenario)
	if err != nil {
		fatal(logger, err)
	}
	v := viper.New()
	v.SetConfigFile(scenario)
	if err = v.ReadInConfig(); err != nil {
		fatal(logger, err)
	}

	// Read the initial state
	dt, err := time.Parse(dateFormat, v.GetString("state.epoch"))
	if err != nil {
		fatal(logger, fmt.Errorf("state.epoch: %w", err))
	}
	epoch := astroprop.EpochFromTime(dt)
	R, V, err := readVectors(v)
	if err != nil {
		fatal(logger, err)
	}
	initial := astroprop.NewState(epoch, R, V)

	// Read the maneuvers
	var burns []burn
	if err = v.UnmarshalKey("burns", &burns); err != nil {
		fatal(logger, fmt.Errorf("burns: %w", err))
	}
	thrusts := make([]astroprop.Thrust, len(burns))
	for i, b := range burns {
		thrusts[i] = astroprop.Thrust{
			Center:       epoch.Roll(b.Offset),
			Radial:       b.Radial,
			Intrack:      b.Intrack,
			Crosstrack:   b.Crosstrack,
			DurationRate: b.DurationRate,
		}
	}

	fm := cfg.ForceModel(astroprop.DefaultCollaborators())
	prop, err := cfg.Propagator(initial, fm)
	if err != nil {
		fatal(logger, err)
	}
	propLogger := logger
	if !*debug {
		propLogger = kitlog.NewNopLogger()
	}
	reg := prometheus.NewRegistry()
	metrics := astroprop.NewStepMetrics(reg)
	if p, ok := prop.(interface {
		SetLogger(kitlog.Logger)
		SetMetrics(*astroprop.StepMetrics)
	}); ok {
		p.SetLogger(propLogger)
		p.SetMetrics(metrics)
	}
	logger.Log("level", "info", "method", cfg.Integrator.Method, "state", initial, "burns", len(thrusts))

	start := epoch.Roll(v.GetFloat64("ephemeris.start"))
	stop := epoch.Roll(v.GetFloat64("ephemeris.stop"))
	interval := v.GetFloat64("ephemeris.interval")
	if interval <= 0 {
		interval = 60
	}

	if *events {
		logEvents(logger, prop, start)
	}

	begin := time.Now()
	states, propErr := prop.EphemerisManeuver(start, stop, interval, thrusts)
	if propErr != nil {
		logger.Log("level", "error", "err", propErr, "states", len(states))
	}
	w := csv.NewWriter(os.Stdout)
	w.Write([]string{"epoch", "x", "y", "z", "vx", "vy", "vz"})
	for _, s := range states {
		row := []string{s.Epoch.Time().Format(time.RFC3339Nano)}
		for _, x := range s.Vector() {
			row = append(row, fmt.Sprintf("%.9f", x))
		}
		w.Write(row)
	}
	w.Flush()
	if err = w.Error(); err != nil {
		fatal(logger, err)
	}
	logMetrics(logger, reg)
	logger.Log("level", "info", "states", len(states), "duration", time.Since(begin))
	if propErr != nil {
		os.Exit(1)
	}
}

func readVectors(v *viper.Viper) (R, V []float64, err error) {
	R = make([]float64, 3)
	V = make([]float64, 3)
	for i := 0; i < 3; i++ {
		R[i] = v.GetFloat64(fmt.Sprintf("state.R%d", i+1))
		V[i] = v.GetFloat64(fmt.Sprintf("state.V%d", i+1))
	}
	if astroprop.Norm(R) == 0 {
		return nil, nil, fmt.Errorf("state.R1..R3 not set")
	}
	return R, V, nil
}

// logEvents logs the next nodes and apsides after start. The search runs on clones.
func logEvents(logger kitlog.Logger, p astroprop.Propagator, start astroprop.Epoch) {
	for _, finder := range []struct {
		name string
		find func(astroprop.Propagator, astroprop.Epoch) (astroprop.Epoch, astroprop.State, error)
	}{
		{"ascending node", astroprop.AscendingNode},
		{"descending node", astroprop.DescendingNode},
		{"perigee", astroprop.Perigee},
		{"apogee", astroprop.Apogee},
	} {
		e, s, err := finder.find(p, start)
		if err != nil {
			logger.Log("level", "warning", "event", finder.name, "err", err)
			continue
		}
		logger.Log("level", "info", "event", finder.name, "epoch", e.Time().Format(dateFormat), "radius", s.RNorm())
	}
}

func logMetrics(logger kitlog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Log("level", "warning", "err", err)
		return
	}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				logger.Log("level", "info", "metric", f.GetName(), "value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				logger.Log("level", "info", "metric", f.GetName(), "count", h.GetSampleCount(), "sum", h.GetSampleSum())
			}
		}
	}
}

func fatal(logger kitlog.Logger, err error) {
	logger.Log("level", "fatal", "err", err)
	os.Exit(1)
}
