package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/levelgen"
	"github.com/milk9111/shadowmaze/logging"
	"github.com/milk9111/shadowmaze/metrics"
	"github.com/milk9111/shadowmaze/prefabs"
	"github.com/milk9111/shadowmaze/sim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	ticks := flag.Int("ticks", 600, "number of ticks to run (0 runs until interrupted)")
	tick := flag.Duration("tick", time.Second/60, "simulated time per tick")
	realtime := flag.Bool("realtime", false, "sleep one tick between updates")
	seed := flag.Int64("seed", 1, "seed for roaming and generated layouts")
	variant := flag.String("variant", "", "pursuer variant: pursue or sight (default from pursuer.yaml)")
	difficulty := flag.String("difficulty", "", "easy, intermediate, hard or impossible (default from pursuer.yaml)")
	layout := flag.String("layout", "genesis", "layout: "+strings.Join(levelgen.Names(), ", "))
	script := flag.String("script", "", "tengo roam script in prefabs/scripts (default from pursuer.yaml)")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9102")
	watch := flag.Bool("watch", false, "reload pursuer tuning when prefabs/ changes on disk")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := logging.Configure(*logLevel, os.Stderr); err != nil {
		logging.Log.WithError(err).Fatal("bad log level")
	}
	log := logging.For("pursuitsim")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewPrometheus(reg)
	if err != nil {
		log.WithError(err).Fatal("register metrics")
	}
	if *metricsAddr != "" {
		srv := serveMetrics(*metricsAddr, reg, log)
		defer srv.Shutdown(context.Background())
	}

	s, err := sim.New(sim.Config{
		Layout:     *layout,
		Seed:       *seed,
		Difficulty: *difficulty,
		Variant:    *variant,
		Script:     *script,
		Metrics:    rec,
	})
	if err != nil {
		log.WithError(err).Fatal("build simulation")
	}

	var reload <-chan string
	if *watch {
		w, err := prefabs.WatchDisk()
		if err != nil {
			log.WithError(err).Warn("prefab watcher disabled")
		} else {
			defer w.Close()
			reload = w.Events
		}
	}

	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(*tick)
		defer ticker.Stop()
	}

	for i := 0; *ticks == 0 || i < *ticks; i++ {
		select {
		case <-ctx.Done():
			report(log, s.Stats())
			return
		case name, ok := <-reload:
			if !ok {
				reload = nil
				break
			}
			log.WithField("file", name).Info("prefab changed")
			if err := s.ReloadTuning(); err != nil {
				log.WithError(err).Warn("reload failed")
			}
		default:
		}

		s.Tick(*tick)
		st := s.Stats()
		if st.TargetsAlive == 0 {
			log.WithField("frame", st.Frame).Info("all targets caught")
			break
		}
		if ticker != nil {
			<-ticker.C
		}
	}
	report(log, s.Stats())
}

func serveMetrics(addr string, reg *prometheus.Registry, log *logrus.Entry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
	return srv
}

func report(log *logrus.Entry, st sim.Stats) {
	fields := logrus.Fields{
		"frame":         st.Frame,
		"elapsed":       st.Elapsed,
		"pursuers":      st.Pursuers,
		"targets_alive": st.TargetsAlive,
		"target_health": st.TargetHealth,
		"beam_charges":  st.BeamCharges,
	}
	for _, state := range []component.BehaviorState{component.Roaming, component.Chasing, component.Tracking} {
		fields[state.String()] = st.States[state]
	}
	log.WithFields(fields).Info("run finished")
}
