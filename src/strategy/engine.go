package strategy

import (
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/fai-quant/overnight-signal/src/models"
)

// referenceWindow bounds how many trailing bars feed the rule evaluation.
const referenceWindow = 20

// Volume z-scores in [volumeZMin, volumeZMax) mark the contraction zone that
// historically preceded positive overnight drift.
const (
	volumeZMin = -1.5
	volumeZMax = -0.5

	// minVolumeBars is the smallest window for which a z-score is meaningful.
	minVolumeBars = 5
)

type Config struct {
	Symbol          string
	Window          ActiveWindow
	Location        *time.Location
	AllowedWeekdays map[time.Weekday]bool
	Offsets         OffsetTable
	Risk            models.RiskLevel
}

// Engine applies the fixed overnight rule set to a bar sequence and a clock
// reading. It holds no mutable state: Compute is deterministic in its inputs
// for every advisory field of the returned signal.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if cfg.AllowedWeekdays == nil {
		// Overnight positions are only advised Monday through Thursday.
		cfg.AllowedWeekdays = map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
		}
	}

	if cfg.Offsets == nil {
		cfg.Offsets = DefaultOffsetTable()
	}

	if cfg.Risk == "" {
		cfg.Risk = models.RiskMedium
	}

	return &Engine{cfg: cfg}
}

// Compute evaluates the rule set in a fixed order; the first match wins.
func (e *Engine) Compute(bars models.Bars, now time.Time) models.Signal {
	signal := models.Signal{
		ID:          uuid.New(),
		Symbol:      e.cfg.Symbol,
		Action:      models.ActionFlat,
		Entry:       "Market",
		Risk:        e.cfg.Risk,
		GeneratedAt: now.UTC(),
	}

	if len(bars) == 0 {
		signal.RuleTriggered = "no data"
		return signal
	}

	tail := bars
	if len(tail) > referenceWindow {
		tail = tail[len(tail)-referenceWindow:]
	}

	for _, bar := range tail {
		if err := bar.Validate(); err != nil {
			signal.RuleTriggered = "invalid price data"
			return signal
		}
	}

	last := tail[len(tail)-1]
	reference := last.Close
	signal.ReferencePrice = &reference

	local := now.In(e.cfg.Location)
	if !e.cfg.AllowedWeekdays[local.Weekday()] || !e.cfg.Window.Contains(local) {
		signal.RuleTriggered = "outside active hours"
		return signal
	}

	offsets := e.cfg.Offsets.For(e.cfg.Risk)
	signal.StopLoss = offsets.StopLoss
	signal.TakeProfit = offsets.TakeProfit

	if z, ok := volumeZScore(tail.Volumes()); ok && z >= volumeZMin && z < volumeZMax {
		signal.Action = models.ActionBuy
		signal.RuleTriggered = "volume contraction"
		return signal
	}

	if last.Close >= referenceMean(tail) {
		signal.Action = models.ActionBuy
		signal.RuleTriggered = "close above reference"
	} else {
		signal.Action = models.ActionSell
		signal.RuleTriggered = "close below reference"
	}

	return signal
}

// volumeZScore positions the latest volume within the trailing window.
func volumeZScore(volumes []float64) (float64, bool) {
	if len(volumes) < minVolumeBars {
		return 0, false
	}

	mean, err := stats.Mean(volumes)
	if err != nil {
		return 0, false
	}

	sd, err := stats.StandardDeviation(volumes)
	if err != nil || sd == 0 {
		return 0, false
	}

	return (volumes[len(volumes)-1] - mean) / sd, true
}

// referenceMean averages the closes preceding the latest bar. A single-bar
// sequence is its own reference, which resolves to a BUY tie-break.
func referenceMean(bars models.Bars) float64 {
	closes := bars.Closes()
	if len(closes) > 1 {
		closes = closes[:len(closes)-1]
	}

	mean, err := stats.Mean(closes)
	if err != nil {
		return bars[len(bars)-1].Close
	}

	return mean
}
