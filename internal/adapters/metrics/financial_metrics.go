package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/dronewatch-go/internal/application/common"
	ledgerQueries "github.com/andrescamacho/dronewatch-go/internal/application/ledger/queries"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// GameIDSource reports which game the profit and loss gauges should follow
type GameIDSource func() string

// FinancialMetricsCollector handles journal metrics (balance, transactions, P&L)
type FinancialMetricsCollector struct {
	// Dependencies
	mediator mediator.Mediator
	gameID   GameIDSource
	logger   *slog.Logger

	// Balance metrics
	journalBalance prometheus.Gauge

	// Transaction metrics
	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec

	// P&L metrics
	totalRevenue  *prometheus.GaugeVec
	totalExpenses *prometheus.GaugeVec
	netProfit     prometheus.Gauge

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewFinancialMetricsCollector creates a new financial metrics collector.
// A nil mediator disables P&L polling.
func NewFinancialMetricsCollector(med mediator.Mediator, gameID GameIDSource, logger *slog.Logger) *FinancialMetricsCollector {
	if logger == nil {
		logger = common.DiscardLogger()
	}
	return &FinancialMetricsCollector{
		mediator: med,
		gameID:   gameID,
		logger:   logger,

		journalBalance: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "journal_balance",
				Help:      "Balance after the most recently journaled transaction",
			},
		),

		// Transaction count by type/category
		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of transactions by type and category",
			},
			[]string{"type", "category"},
		),

		// Transaction amount distribution
		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Transaction amount distribution",
				Buckets:   []float64{5, 10, 15, 25, 30, 50, 75, 100, 250},
			},
			[]string{"type", "category"},
		),

		// Total revenue by category
		totalRevenue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_revenue",
				Help:      "Total revenue of the current game by category",
			},
			[]string{"category"},
		),

		// Total expenses by category
		totalExpenses: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_expenses",
				Help:      "Total expenses of the current game by category",
			},
			[]string{"category"},
		),

		netProfit: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "net_profit",
				Help:      "Net profit of the current game (revenue - expenses)",
			},
		),
	}
}

// Register registers all financial metrics with the Prometheus registry
func (c *FinancialMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.journalBalance,
		c.transactionsTotal,
		c.transactionAmount,
		c.totalRevenue,
		c.totalExpenses,
		c.netProfit,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins the P&L polling goroutine
func (c *FinancialMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollProfitLoss(interval)
}

// Stop gracefully stops the financial metrics collector
func (c *FinancialMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *FinancialMetricsCollector) pollProfitLoss(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.UpdateProfitLoss(c.ctx)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.UpdateProfitLoss(c.ctx)
		}
	}
}

// UpdateProfitLoss refreshes the P&L gauges from the journal of the current game
func (c *FinancialMetricsCollector) UpdateProfitLoss(ctx context.Context) {
	if c.mediator == nil || c.gameID == nil {
		return
	}

	response, err := c.mediator.Send(ctx, &ledgerQueries.GetProfitLossQuery{GameID: c.gameID()})
	if err != nil {
		c.logger.Warn("failed to fetch profit/loss", "error", err)
		return
	}

	pl, ok := response.(*ledgerQueries.GetProfitLossResponse)
	if !ok {
		c.logger.Warn("unexpected response type for P&L query", "type", fmt.Sprintf("%T", response))
		return
	}

	c.totalRevenue.Reset()
	for category, amount := range pl.RevenueBreakdown {
		c.totalRevenue.WithLabelValues(category).Set(amount)
	}

	c.totalExpenses.Reset()
	for category, amount := range pl.ExpenseBreakdown {
		c.totalExpenses.WithLabelValues(category).Set(amount)
	}

	c.netProfit.Set(pl.NetProfit)
}

// RecordTransaction records a transaction event
func (c *FinancialMetricsCollector) RecordTransaction(
	transactionType string,
	category string,
	amount float64,
	balance float64,
) {
	c.journalBalance.Set(balance)

	c.transactionsTotal.WithLabelValues(transactionType, category).Inc()

	// Histogram takes the absolute value
	if amount < 0 {
		amount = -amount
	}
	c.transactionAmount.WithLabelValues(transactionType, category).Observe(amount)
}
