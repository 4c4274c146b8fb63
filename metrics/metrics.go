// Package metrics exports pursuit counters to Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/milk9111/shadowmaze/nav"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shadowmaze"

// Recorder receives simulation events worth counting.
type Recorder interface {
	nav.Observer
	VisibilityCheck(visible bool)
	Transition(from, to string)
	Contact()
	BeamKill()
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveSearch(nav.SearchStats) {}
func (Nop) VisibilityCheck(bool)          {}
func (Nop) Transition(string, string)     {}
func (Nop) Contact()                      {}
func (Nop) BeamKill()                     {}

// Prometheus counts searches, sight checks, transitions, contacts and beam
// kills.
type Prometheus struct {
	searches    *prometheus.CounterVec
	expanded    prometheus.Counter
	visibility  *prometheus.CounterVec
	transitions *prometheus.CounterVec
	contacts    prometheus.Counter
	beamKills   prometheus.Counter
}

// NewPrometheus registers the counters on reg. Counters already registered on
// reg are reused.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_searches_total",
			Help:      "Path searches by outcome.",
		}, []string{"result"}),
		expanded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_nodes_expanded_total",
			Help:      "Cells closed across all path searches.",
		}),
		visibility: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visibility_checks_total",
			Help:      "Sight checks by result.",
		}, []string{"visible"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "behavior_transitions_total",
			Help:      "Pursuer state changes.",
		}, []string{"from", "to"}),
		contacts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contacts_total",
			Help:      "Ticks on which a pursuer shared a cell with its target.",
		}),
		beamKills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "beam_kills_total",
			Help:      "Pursuers removed by light beams.",
		}),
	}
	var err error
	p.searches = register(reg, p.searches, &err)
	p.expanded = register(reg, p.expanded, &err)
	p.visibility = register(reg, p.visibility, &err)
	p.transitions = register(reg, p.transitions, &err)
	p.contacts = register(reg, p.contacts, &err)
	p.beamKills = register(reg, p.beamKills, &err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, errp *error) C {
	if *errp != nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		*errp = err
	}
	return c
}

func (p *Prometheus) ObserveSearch(s nav.SearchStats) {
	result := "unreachable"
	if s.Reached {
		result = "reached"
	}
	p.searches.WithLabelValues(result).Inc()
	p.expanded.Add(float64(s.Expanded))
}

func (p *Prometheus) VisibilityCheck(visible bool) {
	p.visibility.WithLabelValues(strconv.FormatBool(visible)).Inc()
}

func (p *Prometheus) Transition(from, to string) {
	p.transitions.WithLabelValues(from, to).Inc()
}

func (p *Prometheus) Contact()  { p.contacts.Inc() }
func (p *Prometheus) BeamKill() { p.beamKills.Inc() }

func (p *Prometheus) Contacts() prometheus.Counter  { return p.contacts }
func (p *Prometheus) BeamKills() prometheus.Counter { return p.beamKills }

// Handler serves the gatherer in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
