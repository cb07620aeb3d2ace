// Package metrics exposes Prometheus collectors for game activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/bowling/internal/game"
)

var (
	gamesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bowling_games_started_total",
		Help: "Games created.",
	})
	gamesFinished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bowling_games_finished_total",
		Help: "Games that reached their last throw.",
	})
	rolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bowling_rolls_total",
		Help: "Throws recorded, by the kind of the turn after the throw.",
	}, []string{"kind"})
	finalScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bowling_final_score",
		Help:    "Final score of finished games.",
		Buckets: prometheus.LinearBuckets(0, 30, 11),
	})
)

// GameStarted counts a new game.
func GameStarted() { gamesStarted.Inc() }

// Rolled counts a throw classified into kind.
func Rolled(kind game.TurnKind) { rolls.WithLabelValues(kind.String()).Inc() }

// GameFinished counts a finished game and observes its score.
func GameFinished(score int) {
	gamesFinished.Inc()
	finalScore.Observe(float64(score))
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
