package marketdata

import (
	"context"

	"github.com/fai-quant/overnight-signal/src/models"
)

// Fetcher retrieves recent price bars for one instrument. Implementations
// make at most one outbound call per Fetch and report provider failures as
// models.DataUnavailableErr; retry policy belongs to the caller.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string, lookback int) (models.Bars, error)
}
