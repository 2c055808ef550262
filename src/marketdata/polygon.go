package marketdata

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	polygonmodels "github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"

	"github.com/fai-quant/overnight-signal/src/models"
)

const fetchTimeout = 10 * time.Second

type PolygonFetcher struct {
	Client *polygon.Client
}

func NewPolygonFetcher(apiKey string) *PolygonFetcher {
	return &PolygonFetcher{
		Client: polygon.New(apiKey),
	}
}

// Fetch pulls up to lookback daily bars ending today, ascending. The request
// window is padded so weekends and market holidays still yield enough rows.
func (f *PolygonFetcher) Fetch(ctx context.Context, symbol string, lookback int) (models.Bars, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -lookback*2)

	params := polygonmodels.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   polygonmodels.Day,
		From:       polygonmodels.Millis(from),
		To:         polygonmodels.Millis(to),
	}.WithOrder(polygonmodels.Asc).WithAdjusted(true)

	log.Debugf("fetching %s daily bars since %s", symbol, from.Format("2006-01-02"))

	iter := f.Client.ListAggs(ctx, params)

	var bars models.Bars
	for iter.Next() {
		item := iter.Item()
		bars = append(bars, models.Bar{
			Timestamp: time.Time(item.Timestamp),
			Open:      item.Open,
			High:      item.High,
			Low:       item.Low,
			Close:     item.Close,
			Volume:    item.Volume,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("PolygonFetcher.Fetch: %v: %w", err, models.DataUnavailableErr)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("PolygonFetcher.Fetch: no results for %s: %w", symbol, models.DataUnavailableErr)
	}

	if len(bars) > lookback {
		bars = bars[len(bars)-lookback:]
	}

	return bars, nil
}
