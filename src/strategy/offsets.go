package strategy

import "github.com/fai-quant/overnight-signal/src/models"

// Offsets are signed distances from the entry price, in instrument points.
type Offsets struct {
	StopLoss   float64
	TakeProfit float64
}

type OffsetTable map[models.RiskLevel]Offsets

func DefaultOffsetTable() OffsetTable {
	return OffsetTable{
		models.RiskLow:    {StopLoss: -150, TakeProfit: 200},
		models.RiskMedium: {StopLoss: -250, TakeProfit: 400},
		models.RiskHigh:   {StopLoss: -400, TakeProfit: 700},
	}
}

func (t OffsetTable) For(risk models.RiskLevel) Offsets {
	if offsets, ok := t[risk]; ok {
		return offsets
	}

	return t[models.RiskMedium]
}
