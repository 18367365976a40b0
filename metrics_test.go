package astroprop

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics() *StepMetrics {
	return NewStepMetrics(prometheus.NewRegistry())
}

func counterValue(c prometheus.Counter) float64 {
	return testutil.ToFloat64(c)
}

func TestNilMetrics(t *testing.T) {
	var m *StepMetrics
	m.accept(10)
	m.reject()
	m.evaluated(7)
	m.estimated(0.5)
}

func TestStepMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStepMetrics(reg)
	s, period := circularLEO()
	p := NewRungeKuttaAdaptive(s, nil)
	p.SetMetrics(m)
	if _, err := p.Propagate(Epoch(period)); err != nil {
		t.Fatal(err)
	}
	accepted := counterValue(m.Accepted)
	rejected := counterValue(m.Rejected)
	if accepted < 100 {
		t.Fatalf("only %f accepted steps over one period", accepted)
	}
	if evals := counterValue(m.Evaluations); evals != float64(DormandPrince54.Stages())*(accepted+rejected) {
		t.Fatalf("%f evaluations for %f steps", evals, accepted+rejected)
	}
	if n := testutil.CollectAndCount(m.StepSize); n != 1 {
		t.Fatalf("expected one histogram, got %d", n)
	}
	families, err := reg.Gather()
	if err != nil || len(families) != 5 {
		t.Fatalf("expected five registered metrics, got %d (%v)", len(families), err)
	}
	// A second registration on the same registry is a programming error.
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate registration should panic")
		}
	}()
	NewStepMetrics(reg)
}
