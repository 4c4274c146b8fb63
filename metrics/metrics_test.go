package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/milk9111/shadowmaze/nav"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	p.ObserveSearch(nav.SearchStats{Expanded: 12, Reached: true, Length: 4})
	p.ObserveSearch(nav.SearchStats{Expanded: 30})
	p.VisibilityCheck(true)
	p.VisibilityCheck(false)
	p.VisibilityCheck(false)
	p.Transition("chasing", "tracking")
	p.Contact()
	p.Contact()
	p.BeamKill()

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"reached", p.searches.WithLabelValues("reached"), 1},
		{"unreachable", p.searches.WithLabelValues("unreachable"), 1},
		{"expanded", p.expanded, 42},
		{"visible", p.visibility.WithLabelValues("true"), 1},
		{"hidden", p.visibility.WithLabelValues("false"), 2},
		{"transition", p.transitions.WithLabelValues("chasing", "tracking"), 1},
		{"contacts", p.contacts, 2},
		{"beam_kills", p.beamKills, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tc.c); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPrometheusReusesRegisteredCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPrometheus(reg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewPrometheus(reg)
	if err != nil {
		t.Fatalf("second registration should reuse counters: %v", err)
	}
	a.Contact()
	b.Contact()
	if got := testutil.ToFloat64(a.contacts); got != 2 {
		t.Fatalf("shared counter = %v, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	if err != nil {
		t.Fatal(err)
	}
	p.BeamKill()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "shadowmaze_beam_kills_total 1") {
		t.Fatalf("metrics output missing beam kills:\n%s", rec.Body.String())
	}
}

func TestNopSatisfiesRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.ObserveSearch(nav.SearchStats{})
	r.Transition("a", "b")
}
