package models

import (
	"fmt"
	"math"
	"time"
)

// Bar is one aggregated price observation for a time interval, normalized
// from the provider's wire format. Bars are immutable once fetched.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Validate rejects bars whose close cannot be used as a reference price.
func (b Bar) Validate() error {
	if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
		return fmt.Errorf("Bar.Validate: close is not a valid number: %w", InvalidPriceDataErr)
	}

	if b.Close <= 0 {
		return fmt.Errorf("Bar.Validate: close %.2f must be positive: %w", b.Close, InvalidPriceDataErr)
	}

	return nil
}

// Bars is an ordered sequence, most-recent-last.
type Bars []Bar

func (b Bars) Closes() []float64 {
	closes := make([]float64, 0, len(b))
	for _, bar := range b {
		closes = append(closes, bar.Close)
	}

	return closes
}

func (b Bars) Volumes() []float64 {
	volumes := make([]float64, 0, len(b))
	for _, bar := range b {
		volumes = append(volumes, bar.Volume)
	}

	return volumes
}

func (b Bars) Last() (Bar, bool) {
	if len(b) == 0 {
		return Bar{}, false
	}

	return b[len(b)-1], true
}
