package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/dronewatch-go/internal/application/events"
)

// GameMetricsCollector turns game notifications into Prometheus series
type GameMetricsCollector struct {
	balance          prometheus.Gauge
	currentRound     prometheus.Gauge
	remainingSeconds prometheus.Gauge
	fleetSize        prometheus.Gauge
	wantedRemaining  prometheus.Gauge

	roundsStarted   prometheus.Counter
	roundsEnded     *prometheus.CounterVec
	arrests         *prometheus.CounterVec
	identifications *prometheus.CounterVec
	dronesPurchased prometheus.Counter
	droneCost       prometheus.Histogram
	bankruptcies    prometheus.Counter
	gamesOver       *prometheus.CounterVec
	commendations   prometheus.Counter
	roundArrests    prometheus.Histogram
}

// NewGameMetricsCollector creates a new game metrics collector
func NewGameMetricsCollector() *GameMetricsCollector {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      name,
			Help:      help,
		})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      name,
			Help:      help,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &GameMetricsCollector{
		balance:          gauge("balance", "Current ledger balance"),
		currentRound:     gauge("current_round", "Index of the current or last played round"),
		remainingSeconds: gauge("round_remaining_seconds", "Seconds left in the running round"),
		fleetSize:        gauge("drones", "Number of drones owned in the current game"),
		wantedRemaining:  gauge("wanted_remaining", "Wanted persons still at large this round"),

		roundsStarted:   counter("rounds_started_total", "Total number of rounds started"),
		roundsEnded:     counterVec("rounds_ended_total", "Total number of rounds ended by end reason", "reason"),
		arrests:         counterVec("arrests_total", "Total number of arrest verdicts by outcome", "outcome", "source"),
		identifications: counterVec("identifications_total", "Total number of drone identifications", "targets_player"),
		dronesPurchased: counter("drones_purchased_total", "Total number of drones purchased"),
		droneCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "drone_cost",
			Help:      "Price paid per drone",
			Buckets:   []float64{15, 22.5, 33.75, 50.625, 75.9375, 113.90625},
		}),
		bankruptcies:  counter("bankruptcies_total", "Total number of bankruptcy signals"),
		gamesOver:     counterVec("games_over_total", "Total number of finished games by reason", "reason"),
		commendations: counter("commendations_total", "Total number of commendations awarded"),
		roundArrests: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "round_arrests",
			Help:      "Correct arrests per finished round",
			Buckets:   prometheus.LinearBuckets(0, 1, 12),
		}),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.balance,
		c.currentRound,
		c.remainingSeconds,
		c.fleetSize,
		c.wantedRemaining,
		c.roundsStarted,
		c.roundsEnded,
		c.arrests,
		c.identifications,
		c.dronesPurchased,
		c.droneCost,
		c.bankruptcies,
		c.gamesOver,
		c.commendations,
		c.roundArrests,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Attach subscribes the collector to every notification on the bus
func (c *GameMetricsCollector) Attach(bus *events.Bus) *events.Subscription {
	return bus.Subscribe(c.Observe)
}

// Observe updates the series affected by one notification
func (c *GameMetricsCollector) Observe(event events.Event) {
	switch p := event.Payload.(type) {
	case events.BalanceChangedPayload:
		c.balance.Set(p.After)
		// Resets post without a transaction type
		if p.TransactionType == "" {
			c.fleetSize.Set(0)
			c.currentRound.Set(0)
		}
	case events.BankruptcyPayload:
		c.bankruptcies.Inc()
	case events.RoundStartedPayload:
		c.roundsStarted.Inc()
		c.currentRound.Set(float64(p.Round))
		c.remainingSeconds.Set(p.DurationSeconds)
		c.wantedRemaining.Set(float64(p.WantedCount))
	case events.TimerTickPayload:
		c.remainingSeconds.Set(p.RemainingSeconds)
	case events.WantedListUpdatedPayload:
		c.wantedRemaining.Set(float64(len(p.Entries)))
	case events.RoundEndedPayload:
		reason := p.Reason
		if reason == "" {
			reason = "NONE"
		}
		c.roundsEnded.WithLabelValues(reason).Inc()
		c.roundArrests.Observe(float64(p.Arrests))
		c.remainingSeconds.Set(0)
	case events.DronePurchasedPayload:
		c.dronesPurchased.Inc()
		c.droneCost.Observe(p.Cost)
		c.fleetSize.Set(float64(p.DroneID))
	case events.DroneIdentificationPayload:
		c.identifications.WithLabelValues(strconv.FormatBool(p.TargetsPlayer)).Inc()
	case events.ArrestResolvedPayload:
		source := "officer"
		if p.DroneID > 0 {
			source = "drone"
		}
		c.arrests.WithLabelValues(p.Outcome, source).Inc()
	case events.GameOverPayload:
		c.gamesOver.WithLabelValues(p.Reason).Inc()
	case events.CommendationAwardedPayload:
		c.commendations.Inc()
	}
}
