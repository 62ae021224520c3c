// Package market fetches public Brazilian market data: FX rates from
// AwesomeAPI, stock quotes from brapi and macro indicators from the central
// bank's SGS series. These providers need no authentication and sit outside
// the Investorion backend, so the package keeps its own HTTP client.
package market

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"

	cerrors "github.com/investorion/cli/pkg/errors"
)

const (
	DefaultFXBaseURL     = "https://economia.awesomeapi.com.br"
	DefaultStocksBaseURL = "https://brapi.dev"
	DefaultMacroBaseURL  = "https://api.bcb.gov.br"

	defaultTimeout = 15 * time.Second
)

// SGS series codes for the macro indicators shown on the dashboard.
const (
	SeriesIPCA  = 433
	SeriesSelic = 432
	SeriesCDI   = 12
)

// Quote is a single FX pair or stock quote.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	High          float64 `json:"high,omitempty"`
	Low           float64 `json:"low,omitempty"`
}

// Indicator is a macro-economic series reading.
type Indicator struct {
	Code  int     `json:"code"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// Options configures the provider endpoints, mainly for tests and
// self-hosted mirrors.
type Options struct {
	FXBaseURL     string
	StocksBaseURL string
	MacroBaseURL  string
	Timeout       time.Duration
}

// Service talks to the three quote providers.
type Service struct {
	fx     *resty.Client
	stocks *resty.Client
	macro  *resty.Client
}

// New creates a market service. Zero-value options fall back to the public
// endpoints.
func New(opts Options) *Service {
	if opts.FXBaseURL == "" {
		opts.FXBaseURL = DefaultFXBaseURL
	}
	if opts.StocksBaseURL == "" {
		opts.StocksBaseURL = DefaultStocksBaseURL
	}
	if opts.MacroBaseURL == "" {
		opts.MacroBaseURL = DefaultMacroBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	newClient := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetTimeout(opts.Timeout).
			SetHeader("Accept", "application/json")
	}

	return &Service{
		fx:     newClient(opts.FXBaseURL),
		stocks: newClient(opts.StocksBaseURL),
		macro:  newClient(opts.MacroBaseURL),
	}
}

type awesomeQuote struct {
	Code      string `json:"code"`
	Codein    string `json:"codein"`
	Name      string `json:"name"`
	Bid       string `json:"bid"`
	PctChange string `json:"pctChange"`
	High      string `json:"high"`
	Low       string `json:"low"`
}

// FetchFX returns the latest rates for currency pairs given as "USD-BRL".
// Pair order in the result follows the input.
func (s *Service) FetchFX(ctx context.Context, pairs []string) ([]Quote, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	resp, err := s.fx.R().
		SetContext(ctx).
		Get("/last/" + strings.Join(pairs, ","))
	if err != nil {
		return nil, cerrors.ConnectionError("FX provider unreachable", err)
	}
	if !resp.IsSuccess() {
		return nil, cerrors.HTTPError(fmt.Sprintf("FX provider returned HTTP %d", resp.StatusCode()), resp.StatusCode())
	}

	// AwesomeAPI keys the response by pair without the dash: USDBRL.
	var body map[string]awesomeQuote
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, cerrors.HTTPError("FX provider returned an unexpected payload", resp.StatusCode())
	}

	quotes := make([]Quote, 0, len(pairs))
	for _, pair := range pairs {
		raw, ok := body[strings.ReplaceAll(pair, "-", "")]
		if !ok {
			continue
		}
		quotes = append(quotes, Quote{
			Symbol:        pair,
			Name:          raw.Name,
			Price:         parseFloat(raw.Bid),
			ChangePercent: parseFloat(raw.PctChange),
			High:          parseFloat(raw.High),
			Low:           parseFloat(raw.Low),
		})
	}
	return quotes, nil
}

type brapiResponse struct {
	Results []struct {
		Symbol              string  `json:"symbol"`
		ShortName           string  `json:"shortName"`
		RegularMarketPrice  float64 `json:"regularMarketPrice"`
		RegularMarketChange float64 `json:"regularMarketChangePercent"`
		DayHigh             float64 `json:"regularMarketDayHigh"`
		DayLow              float64 `json:"regularMarketDayLow"`
	} `json:"results"`
}

// FetchStocks returns quotes for B3 tickers.
func (s *Service) FetchStocks(ctx context.Context, symbols []string) ([]Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	resp, err := s.stocks.R().
		SetContext(ctx).
		Get("/api/quote/" + strings.Join(symbols, ","))
	if err != nil {
		return nil, cerrors.ConnectionError("stock quote provider unreachable", err)
	}
	if !resp.IsSuccess() {
		return nil, cerrors.HTTPError(fmt.Sprintf("stock quote provider returned HTTP %d", resp.StatusCode()), resp.StatusCode())
	}

	var body brapiResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, cerrors.HTTPError("stock quote provider returned an unexpected payload", resp.StatusCode())
	}

	quotes := make([]Quote, 0, len(body.Results))
	for _, r := range body.Results {
		quotes = append(quotes, Quote{
			Symbol:        r.Symbol,
			Name:          r.ShortName,
			Price:         r.RegularMarketPrice,
			ChangePercent: r.RegularMarketChange,
			High:          r.DayHigh,
			Low:           r.DayLow,
		})
	}
	return quotes, nil
}

type sgsReading struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// FetchIndicator returns the latest reading for one SGS series.
func (s *Service) FetchIndicator(ctx context.Context, code int, name string) (*Indicator, error) {
	resp, err := s.macro.R().
		SetContext(ctx).
		SetQueryParam("formato", "json").
		Get(fmt.Sprintf("/dados/serie/bcdata.sgs.%d/dados/ultimos/1", code))
	if err != nil {
		return nil, cerrors.ConnectionError("central bank SGS unreachable", err)
	}
	if !resp.IsSuccess() {
		return nil, cerrors.HTTPError(fmt.Sprintf("SGS returned HTTP %d for series %d", resp.StatusCode(), code), resp.StatusCode())
	}

	var readings []sgsReading
	if err := json.Unmarshal(resp.Body(), &readings); err != nil || len(readings) == 0 {
		return nil, cerrors.HTTPError(fmt.Sprintf("SGS series %d returned no readings", code), resp.StatusCode())
	}

	latest := readings[len(readings)-1]
	return &Indicator{
		Code:  code,
		Name:  name,
		Value: parseCommaDecimal(latest.Value),
		Date:  latest.Date,
	}, nil
}

// FetchMacro returns the standard indicator set: IPCA, Selic and CDI.
// Series that fail are skipped; an error is returned only when every series
// fails.
func (s *Service) FetchMacro(ctx context.Context) ([]Indicator, error) {
	series := []struct {
		code int
		name string
	}{
		{SeriesIPCA, "IPCA"},
		{SeriesSelic, "Selic"},
		{SeriesCDI, "CDI"},
	}

	indicators := make([]Indicator, 0, len(series))
	var lastErr error
	for _, sr := range series {
		indicator, err := s.FetchIndicator(ctx, sr.code, sr.name)
		if err != nil {
			lastErr = err
			continue
		}
		indicators = append(indicators, *indicator)
	}

	if len(indicators) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return indicators, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseCommaDecimal handles SGS values, which use a comma as the decimal
// separator ("0,56").
func parseCommaDecimal(s string) float64 {
	return parseFloat(strings.ReplaceAll(s, ",", "."))
}
