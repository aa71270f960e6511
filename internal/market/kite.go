package market

import (
	"context"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"market-pulse/internal/trace"
	"market-pulse/internal/types"
)

// KiteClient is a quote provider backed by the Zerodha Kite Connect API,
// for watchlists of NSE/BSE listed symbols. It does not provide news.
type KiteClient struct {
	kc       *kiteconnect.Client
	exchange string
}

// NewKiteClient creates a Kite Connect quote provider
func NewKiteClient(apiKey, accessToken, exchange string) *KiteClient {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	if exchange == "" {
		exchange = "NSE"
	}
	return &KiteClient{kc: kc, exchange: exchange}
}

// GetQuote fetches the last traded price and day change for a symbol
func (k *KiteClient) GetQuote(ctx context.Context, symbol string) (types.Quote, error) {
	_, span := trace.StartSpan(ctx, "kite-get-quote")
	defer span.End()

	instrument := k.exchange + ":" + symbol
	quotes, err := k.kc.GetQuote(instrument)
	if err != nil {
		return types.Quote{}, fmt.Errorf("failed to fetch kite quote for %s: %w", symbol, err)
	}

	q, ok := quotes[instrument]
	if !ok {
		return types.Quote{}, fmt.Errorf("no kite quote returned for %s", instrument)
	}

	out := types.Quote{
		Symbol:    symbol,
		Price:     q.LastPrice,
		Currency:  "INR",
		FetchedAt: time.Now().Unix(),
	}
	if q.OHLC.Close > 0 {
		out.ChangePercent = (q.LastPrice - q.OHLC.Close) / q.OHLC.Close * 100
	}

	return out, nil
}
