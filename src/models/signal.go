package models

import (
	"time"

	"github.com/google/uuid"
)

type SignalAction int

const (
	ActionFlat SignalAction = iota
	ActionBuy
	ActionSell
)

func (a SignalAction) String() string {
	switch a {
	case ActionBuy:
		return "BUY"
	case ActionSell:
		return "SELL"
	default:
		return "FLAT"
	}
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Signal is the advisory output of one invocation. It is created once by the
// strategy engine, never mutated afterwards, and never persisted across runs.
type Signal struct {
	ID         uuid.UUID
	Symbol     string
	Action     SignalAction
	Entry      string
	StopLoss   float64
	TakeProfit float64
	Risk       RiskLevel

	// ReferencePrice is nil when no usable market data was available.
	ReferencePrice *float64

	RuleTriggered string
	GeneratedAt   time.Time
}
