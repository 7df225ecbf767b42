package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	ledgerQueries "github.com/andrescamacho/dronewatch-go/internal/application/ledger/queries"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

type pingQuery struct{ fail bool }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if request.(*pingQuery).fail {
		return nil, errors.New("boom")
	}
	return "pong", nil
}

type profitLossStub struct{}

func (profitLossStub) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return &ledgerQueries.GetProfitLossResponse{
		TotalRevenue:     100,
		TotalExpenses:    45,
		NetProfit:        55,
		RevenueBreakdown: map[string]float64{"BOUNTY_REVENUE": 100},
		ExpenseBreakdown: map[string]float64{"DRONE_INVESTMENTS": 15, "PENALTIES": 30},
	}, nil
}

func TestRecordTransaction_NoopWithoutCollector(t *testing.T) {
	SetGlobalFinancialCollector(nil)
	assert.NotPanics(t, func() {
		RecordTransaction("ARREST_REWARD", "BOUNTY_REVENUE", 50, 150)
	})
}

func TestFinancialCollector_RecordTransaction(t *testing.T) {
	c := NewFinancialMetricsCollector(nil, nil, nil)
	SetGlobalFinancialCollector(c)
	defer SetGlobalFinancialCollector(nil)

	RecordTransaction("ARREST_REWARD", "BOUNTY_REVENUE", 50, 150)
	RecordTransaction("DRONE_PURCHASE", "DRONE_INVESTMENTS", -15, 135)

	assert.Equal(t, 135.0, testutil.ToFloat64(c.journalBalance))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transactionsTotal.WithLabelValues("ARREST_REWARD", "BOUNTY_REVENUE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transactionsTotal.WithLabelValues("DRONE_PURCHASE", "DRONE_INVESTMENTS")))
}

func TestFinancialCollector_UpdateProfitLoss(t *testing.T) {
	med := mediator.NewMediator()
	require.NoError(t, med.Register(reflect.TypeOf(&ledgerQueries.GetProfitLossQuery{}), profitLossStub{}))

	c := NewFinancialMetricsCollector(med, func() string { return "00000000-0000-0000-0000-000000000001" }, nil)
	c.UpdateProfitLoss(context.Background())

	assert.Equal(t, 55.0, testutil.ToFloat64(c.netProfit))
	assert.Equal(t, 100.0, testutil.ToFloat64(c.totalRevenue.WithLabelValues("BOUNTY_REVENUE")))
	assert.Equal(t, 30.0, testutil.ToFloat64(c.totalExpenses.WithLabelValues("PENALTIES")))
}

func TestPrometheusMiddleware_RecordsStatus(t *testing.T) {
	collector := NewCommandMetricsCollector()
	med := mediator.NewMediator()
	med.Use(PrometheusMiddleware(collector))
	require.NoError(t, med.Register(reflect.TypeOf(&pingQuery{}), pingHandler{}))

	_, err := med.Send(context.Background(), &pingQuery{})
	require.NoError(t, err)
	_, err = med.Send(context.Background(), &pingQuery{fail: true})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("pingQuery", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("pingQuery", "error")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := PrometheusMiddleware(nil)
	resp, err := mw(context.Background(), &pingQuery{}, pingHandler{}.Handle)
	require.NoError(t, err)
	assert.Equal(t, "pong", resp)
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "pingQuery", extractCommandName(&pingQuery{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}

func TestGameCollector_ObservesBus(t *testing.T) {
	c := NewGameMetricsCollector()
	bus := events.NewBus()
	sub := c.Attach(bus)
	defer sub.Close()

	bus.Publish(events.Event{Type: events.EventTypeRoundStarted, Payload: events.RoundStartedPayload{Round: 2, WantedCount: 5, DurationSeconds: 60}})
	bus.Publish(events.Event{Type: events.EventTypeTimerTick, Payload: events.TimerTickPayload{RemainingSeconds: 41}})
	bus.Publish(events.Event{Type: events.EventTypeDronePurchased, Payload: events.DronePurchasedPayload{DroneID: 1, Cost: 15}})
	bus.Publish(events.Event{Type: events.EventTypeArrestResolved, Payload: events.ArrestResolvedPayload{Outcome: "CORRECT_ARREST"}})
	bus.Publish(events.Event{Type: events.EventTypeArrestResolved, Payload: events.ArrestResolvedPayload{Outcome: "WRONG_ARREST", DroneID: 1}})
	bus.Publish(events.Event{Type: events.EventTypeBalanceChanged, Payload: events.BalanceChangedPayload{TransactionType: "ARREST_REWARD", After: 135}})
	bus.Publish(events.Event{Type: events.EventTypeRoundEnded, Payload: events.RoundEndedPayload{Round: 2, Arrests: 1, Reason: "QUOTA_MISSED"}})
	bus.Publish(events.Event{Type: events.EventTypeGameOver, Payload: events.GameOverPayload{Reason: "QUOTA_MISSED"}})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.roundsStarted))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.currentRound))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.remainingSeconds))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fleetSize))
	assert.Equal(t, 135.0, testutil.ToFloat64(c.balance))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.arrests.WithLabelValues("CORRECT_ARREST", "officer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.arrests.WithLabelValues("WRONG_ARREST", "drone")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.roundsEnded.WithLabelValues("QUOTA_MISSED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.gamesOver.WithLabelValues("QUOTA_MISSED")))
}

func TestGameCollector_ResetClearsFleet(t *testing.T) {
	c := NewGameMetricsCollector()
	c.Observe(events.Event{Payload: events.DronePurchasedPayload{DroneID: 3, Cost: 33.75}})
	c.Observe(events.Event{Payload: events.BalanceChangedPayload{After: 100}})

	assert.Equal(t, 0.0, testutil.ToFloat64(c.fleetSize))
	assert.Equal(t, 100.0, testutil.ToFloat64(c.balance))
}

func TestRegister_NoopWhenDisabled(t *testing.T) {
	Registry = nil
	assert.NoError(t, NewGameMetricsCollector().Register())
	assert.NoError(t, NewCommandMetricsCollector().Register())
	assert.NoError(t, NewFinancialMetricsCollector(nil, nil, nil).Register())
	assert.False(t, IsEnabled())
}

func TestServer_ServesRegistry(t *testing.T) {
	InitRegistry()
	defer func() { Registry = nil }()

	game := NewGameMetricsCollector()
	require.NoError(t, game.Register())
	game.Observe(events.Event{Payload: events.RoundStartedPayload{Round: 1, WantedCount: 3, DurationSeconds: 60}})

	srv, err := NewServer("127.0.0.1", 0, "/metrics")
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "dronewatch_game_rounds_started_total 1")
}

func TestNewServer_RequiresRegistry(t *testing.T) {
	Registry = nil
	_, err := NewServer("127.0.0.1", 0, "")
	assert.Error(t, err)
}
