package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fai-quant/overnight-signal/src/models"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()

	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	return NewEngine(Config{
		Symbol:   "FTSEMIB.MI",
		Window:   ActiveWindow{Start: ClockTime{Hour: 9}, End: ClockTime{Hour: 17, Minute: 30}},
		Location: rome,
	})
}

func activeTime(t *testing.T) time.Time {
	t.Helper()

	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	// Tuesday, mid-session
	return time.Date(2024, 6, 4, 12, 0, 0, 0, rome)
}

func makeBars(closes ...float64) models.Bars {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	var bars models.Bars
	for i, c := range closes {
		bars = append(bars, models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
		})
	}

	return bars
}

func TestComputeNoData(t *testing.T) {
	engine := testEngine(t)

	signal := engine.Compute(nil, activeTime(t))

	assert.Equal(t, models.ActionFlat, signal.Action)
	assert.Equal(t, "no data", signal.RuleTriggered)
	assert.Nil(t, signal.ReferencePrice)
}

func TestComputeInvalidPriceData(t *testing.T) {
	engine := testEngine(t)

	t.Run("NaN close", func(t *testing.T) {
		bars := makeBars(100, 101)
		bars[1].Close = math.NaN()

		signal := engine.Compute(bars, activeTime(t))

		assert.Equal(t, models.ActionFlat, signal.Action)
		assert.Equal(t, "invalid price data", signal.RuleTriggered)
		assert.Nil(t, signal.ReferencePrice)
	})

	t.Run("negative close", func(t *testing.T) {
		signal := engine.Compute(makeBars(100, -5), activeTime(t))

		assert.Equal(t, models.ActionFlat, signal.Action)
		assert.Equal(t, "invalid price data", signal.RuleTriggered)
	})
}

func TestComputeOutsideActiveHours(t *testing.T) {
	engine := testEngine(t)
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	t.Run("after close", func(t *testing.T) {
		now := time.Date(2024, 6, 4, 18, 0, 0, 0, rome)
		signal := engine.Compute(makeBars(100, 110), now)

		assert.Equal(t, models.ActionFlat, signal.Action)
		assert.Equal(t, "outside active hours", signal.RuleTriggered)
		require.NotNil(t, signal.ReferencePrice)
		assert.Equal(t, 110.0, *signal.ReferencePrice)
	})

	t.Run("saturday", func(t *testing.T) {
		now := time.Date(2024, 6, 8, 12, 0, 0, 0, rome)
		signal := engine.Compute(makeBars(100, 110), now)

		assert.Equal(t, models.ActionFlat, signal.Action)
		assert.Equal(t, "outside active hours", signal.RuleTriggered)
	})

	t.Run("friday is not an overnight day", func(t *testing.T) {
		now := time.Date(2024, 6, 7, 12, 0, 0, 0, rome)
		signal := engine.Compute(makeBars(100, 110), now)

		assert.Equal(t, models.ActionFlat, signal.Action)
		assert.Equal(t, "outside active hours", signal.RuleTriggered)
	})
}

func TestComputeDirectional(t *testing.T) {
	engine := testEngine(t)

	t.Run("single bar ties to buy", func(t *testing.T) {
		signal := engine.Compute(makeBars(100), activeTime(t))

		assert.Equal(t, models.ActionBuy, signal.Action)
		assert.Equal(t, "close above reference", signal.RuleTriggered)
		require.NotNil(t, signal.ReferencePrice)
		assert.Equal(t, 100.0, *signal.ReferencePrice)
		assert.Equal(t, models.RiskMedium, signal.Risk)
		assert.Equal(t, -250.0, signal.StopLoss)
		assert.Equal(t, 400.0, signal.TakeProfit)
	})

	t.Run("close above trailing mean", func(t *testing.T) {
		signal := engine.Compute(makeBars(100, 101, 102, 103, 110), activeTime(t))

		assert.Equal(t, models.ActionBuy, signal.Action)
		assert.Equal(t, "close above reference", signal.RuleTriggered)
	})

	t.Run("close below trailing mean", func(t *testing.T) {
		signal := engine.Compute(makeBars(110, 109, 108, 107, 90), activeTime(t))

		assert.Equal(t, models.ActionSell, signal.Action)
		assert.Equal(t, "close below reference", signal.RuleTriggered)
		require.NotNil(t, signal.ReferencePrice)
		assert.Equal(t, 90.0, *signal.ReferencePrice)
	})
}

func TestComputeVolumeContraction(t *testing.T) {
	engine := testEngine(t)

	// Twenty bars: ten volumes at 1200, ten at 1000, most recent last. The
	// population mean is 1100 and the standard deviation exactly 100, so the
	// latest volume sits at z = -1.0, inside the contraction zone. The close
	// sequence alone would resolve to SELL, proving rule precedence.
	var closes []float64
	for i := 0; i < 19; i++ {
		closes = append(closes, 100)
	}
	closes = append(closes, 90)

	bars := makeBars(closes...)
	for i := range bars {
		if i < 10 {
			bars[i].Volume = 1200
		} else {
			bars[i].Volume = 1000
		}
	}

	signal := engine.Compute(bars, activeTime(t))

	assert.Equal(t, models.ActionBuy, signal.Action)
	assert.Equal(t, "volume contraction", signal.RuleTriggered)
}

func TestComputeDeterministic(t *testing.T) {
	engine := testEngine(t)
	bars := makeBars(100, 101, 102)
	now := activeTime(t)

	first := engine.Compute(bars, now)
	second := engine.Compute(bars, now)

	// Everything advisory is reproducible; only the correlation ID differs.
	assert.Equal(t, first.Action, second.Action)
	assert.Equal(t, first.RuleTriggered, second.RuleTriggered)
	assert.Equal(t, *first.ReferencePrice, *second.ReferencePrice)
	assert.Equal(t, first.StopLoss, second.StopLoss)
	assert.Equal(t, first.TakeProfit, second.TakeProfit)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
}

func TestParseClockTime(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		clock, err := ParseClockTime("17:30")
		require.NoError(t, err)
		assert.Equal(t, ClockTime{Hour: 17, Minute: 30}, clock)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := ParseClockTime("25:00")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseClockTime("noon")
		assert.Error(t, err)
	})
}
