package alerts

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{CycleID: "cycle-1"}
}

func TestNewEngine(t *testing.T) {
	t.Run("compiles default rule table", func(t *testing.T) {
		engine, err := NewEngine(DefaultRules(DefaultThresholds()))
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("rejects invalid expression", func(t *testing.T) {
		_, err := NewEngine([]Rule{{Name: "bad", Expression: `metrics["x"] <`}})
		require.Error(t, err)
		assert.ErrorContains(t, err, `rule "bad"`)
	})

	t.Run("rejects non-bool expression", func(t *testing.T) {
		_, err := NewEngine([]Rule{{Name: "numeric", Expression: `metrics["x"] + 1.0`}})
		require.Error(t, err)
		assert.ErrorContains(t, err, "must evaluate to bool")
	})

	t.Run("rejects invalid message template", func(t *testing.T) {
		_, err := NewEngine([]Rule{{
			Name:       "tmpl",
			Expression: `true`,
			Message:    `{{metric "x"`,
		}})
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid message template")
	})
}

func TestEngineEvaluate(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("fires on negative net profit", func(t *testing.T) {
		engine, err := NewEngine(DefaultRules(DefaultThresholds()))
		require.NoError(t, err)

		ms := domain.MetricSet{
			NetProfit: domain.Value{Amount: -150.5, Available: true},
		}
		alerts := engine.Evaluate(logger, testSnapshot(), ms)

		require.Len(t, alerts, 1)
		assert.Equal(t, "cycle-1/negative_net_profit", alerts[0].ID)
		assert.Equal(t, domain.PriorityCritical, alerts[0].Priority)
		assert.Equal(t, domain.AlertSourceLocal, alerts[0].Source)
		assert.Equal(t, "Net profit is negative: -150.50", alerts[0].Message)
	})

	t.Run("unavailable metric never fires", func(t *testing.T) {
		engine, err := NewEngine(DefaultRules(DefaultThresholds()))
		require.NoError(t, err)

		ms := domain.MetricSet{
			NetProfit: domain.Value{Amount: -150.5, Available: false},
		}
		assert.Empty(t, engine.Evaluate(logger, testSnapshot(), ms))
	})

	t.Run("critical stock suppresses the low stock rule", func(t *testing.T) {
		engine, err := NewEngine(DefaultRules(DefaultThresholds()))
		require.NoError(t, err)

		ms := domain.MetricSet{
			LowStock: domain.StockList{
				Items: []domain.StockItem{
					{MaterialID: "m1", Critical: true},
					{MaterialID: "m2"},
				},
				Available: true,
			},
		}
		alerts := engine.Evaluate(logger, testSnapshot(), ms)

		require.Len(t, alerts, 1)
		assert.Equal(t, "cycle-1/critical_stock", alerts[0].ID)
		assert.Equal(t, "1 material(s) critically below minimum stock", alerts[0].Message)
	})

	t.Run("threshold rules respect configured limits", func(t *testing.T) {
		thresholds := DefaultThresholds()
		thresholds.PendingOrdersMax = 3
		engine, err := NewEngine(DefaultRules(thresholds))
		require.NoError(t, err)

		ms := domain.MetricSet{
			PendingOrders: domain.Count{N: 4, Available: true},
		}
		alerts := engine.Evaluate(logger, testSnapshot(), ms)

		require.Len(t, alerts, 1)
		assert.Equal(t, "cycle-1/pending_orders_pileup", alerts[0].ID)
		assert.Equal(t, "4 orders are waiting to be processed", alerts[0].Message)
	})

	t.Run("empty workforce never trips the attendance rule", func(t *testing.T) {
		engine, err := NewEngine(DefaultRules(DefaultThresholds()))
		require.NoError(t, err)

		ms := domain.MetricSet{
			TotalEmployees: domain.Count{N: 0, Available: true},
			AttendanceRate: domain.Value{Amount: 0, Available: true},
		}
		assert.Empty(t, engine.Evaluate(logger, testSnapshot(), ms))
	})

	t.Run("attendance rule still fires with staff on the roster", func(t *testing.T) {
		engine, err := NewEngine(DefaultRules(DefaultThresholds()))
		require.NoError(t, err)

		ms := domain.MetricSet{
			TotalEmployees: domain.Count{N: 5, Available: true},
			AttendanceRate: domain.Value{Amount: 40, Available: true},
		}
		alerts := engine.Evaluate(logger, testSnapshot(), ms)
		require.Len(t, alerts, 1)
		assert.Equal(t, "cycle-1/low_attendance", alerts[0].ID)
	})

	t.Run("no decided deliveries never trips the on-time rule", func(t *testing.T) {
		engine, err := NewEngine(DefaultRules(DefaultThresholds()))
		require.NoError(t, err)

		ms := domain.MetricSet{
			OnTimeRate:        domain.Value{Amount: 0, Available: true},
			DecidedDeliveries: domain.Count{N: 0, Available: true},
		}
		assert.Empty(t, engine.Evaluate(logger, testSnapshot(), ms))

		ms.DecidedDeliveries = domain.Count{N: 3, Available: true}
		alerts := engine.Evaluate(logger, testSnapshot(), ms)
		require.Len(t, alerts, 1)
		assert.Equal(t, "cycle-1/late_deliveries", alerts[0].ID)
	})

	t.Run("domain ok flags are visible to rules", func(t *testing.T) {
		engine, err := NewEngine([]Rule{{
			Name:       "orders_down",
			Type:       "ops",
			Priority:   domain.PriorityWarning,
			Domain:     domain.DomainOrders,
			Expression: `!ok["orders"]`,
			Message:    `orders backend is unreachable`,
		}})
		require.NoError(t, err)

		alerts := engine.Evaluate(logger, testSnapshot(), domain.MetricSet{})
		require.Len(t, alerts, 1)
		assert.Equal(t, "orders backend is unreachable", alerts[0].Message)
	})

	t.Run("same snapshot yields identical alerts", func(t *testing.T) {
		engine, err := NewEngine(DefaultRules(DefaultThresholds()))
		require.NoError(t, err)

		ms := domain.MetricSet{
			NetProfit:      domain.Value{Amount: -1, Available: true},
			TotalEmployees: domain.Count{N: 4, Available: true},
			AttendanceRate: domain.Value{Amount: 50, Available: true},
		}
		snap := testSnapshot()
		first := engine.Evaluate(logger, snap, ms)
		second := engine.Evaluate(logger, snap, ms)
		assert.Equal(t, first, second)
	})
}
