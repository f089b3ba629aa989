package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	m.Run()
}

var fixedNow = time.Date(2026, 4, 2, 13, 17, 0, 0, time.UTC)

type fakeSource struct {
	name  string
	out   []models.Candle
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(context.Context, string, models.Interval, int) ([]models.Candle, error) {
	f.calls++
	return f.out, f.err
}

func TestSyntheticShape(t *testing.T) {
	gen := NewSynthetic(42).WithClock(func() time.Time { return fixedNow })

	cs, err := gen.Fetch(context.Background(), "BTCUSDT", models.Interval4h, 250)
	require.NoError(t, err)
	require.Len(t, cs, 250)

	require.Equal(t, time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC), cs[len(cs)-1].OpenTime)
	for i, c := range cs {
		require.GreaterOrEqual(t, c.High, max(c.Open, c.Close), "candle %d", i)
		require.LessOrEqual(t, c.Low, min(c.Open, c.Close), "candle %d", i)
		require.Positive(t, c.Volume)
		if i > 0 {
			require.True(t, c.OpenTime.After(cs[i-1].OpenTime))
			require.Equal(t, cs[i-1].Close, c.Open)
		}
	}
	require.InDelta(t, 95000, cs[0].Open, 1e-9)
}

func TestSyntheticAnchored(t *testing.T) {
	gen := NewSynthetic(7).WithClock(func() time.Time { return fixedNow })

	cs := gen.Anchored(models.Interval1d, 30, 100, 110, 2400)
	require.Len(t, cs, 30)
	require.InDelta(t, 110, cs[len(cs)-1].Close, 110*0.03)
	require.InDelta(t, 100, cs[0].Close, 100*0.03)
	for i := 1; i < len(cs); i++ {
		require.Equal(t, cs[i-1].Close, cs[i].Open)
		require.Equal(t, 24*time.Hour, cs[i].OpenTime.Sub(cs[i-1].OpenTime))
	}
}

func TestChainFallsThrough(t *testing.T) {
	good := []models.Candle{{Close: 1}, {Close: 2}}
	first := &fakeSource{name: "a", err: errors.New("boom")}
	second := &fakeSource{name: "b", out: []models.Candle{{Close: 1}}} // мало свечей
	third := &fakeSource{name: "c", out: good}
	synth := &fakeSource{name: "synthetic", out: []models.Candle{{}, {}, {}}}

	ch := NewChain([]Source{first, second, third}, synth, 0, nil)
	cs, err := ch.Fetch(context.Background(), "BTCUSDT", models.Interval4h, 10)
	require.NoError(t, err)
	require.Equal(t, good, cs)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
	require.Zero(t, synth.calls)
}

func TestChainSyntheticFallback(t *testing.T) {
	synth := NewSynthetic(1).WithClock(func() time.Time { return fixedNow })
	ch := NewChain([]Source{&fakeSource{name: "a", err: ErrDataUnavailable}}, synth, 0, nil)

	cs, err := ch.Fetch(context.Background(), "ETHUSDT", models.Interval1d, 50)
	require.NoError(t, err)
	require.Len(t, cs, 50)
}

func TestChainWithoutFallback(t *testing.T) {
	ch := NewChain([]Source{&fakeSource{name: "a", err: errors.New("down")}}, nil, 0, nil)
	_, err := ch.Fetch(context.Background(), "ETHUSDT", models.Interval1d, 50)
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestChainRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{name: "a", out: []models.Candle{{}, {}}}
	ch := NewChain([]Source{src}, nil, time.Hour, nil)
	_, err := ch.Fetch(ctx, "ETHUSDT", models.Interval1d, 50)
	require.Error(t, err)
	require.Zero(t, src.calls)
}

func TestBucketize(t *testing.T) {
	h := float64(time.Hour.Milliseconds())
	base := float64(fixedNow.Truncate(4 * time.Hour).UnixMilli())
	chart := geckoChart{
		Prices: [][2]float64{
			{base, 10}, {base + h, 12}, {base + 2*h, 9}, {base + 3*h, 11},
			{base + 4*h, 13}, {base + 5*h, 14},
		},
		TotalVolumes: [][2]float64{
			{base, 600}, {base + 3*h, 1200},
			{base + 5*h, 2400},
		},
	}

	cs := bucketize(chart, models.Interval4h)
	require.Len(t, cs, 2)

	require.Equal(t, time.UnixMilli(int64(base)).UTC(), cs[0].OpenTime)
	require.Equal(t, 10.0, cs[0].Open)
	require.Equal(t, 12.0, cs[0].High)
	require.Equal(t, 9.0, cs[0].Low)
	require.Equal(t, 11.0, cs[0].Close)
	require.InDelta(t, 200.0, cs[0].Volume, 1e-9)
	require.Equal(t, 11.0, cs[1].Open)
	require.Equal(t, 14.0, cs[1].High)
	require.Equal(t, 11.0, cs[1].Low)
	require.Equal(t, 14.0, cs[1].Close)
	require.InDelta(t, 400.0, cs[1].Volume, 1e-9)
}

func TestGeckoSource(t *testing.T) {
	base := fixedNow.Truncate(24 * time.Hour).UnixMilli()
	day := (24 * time.Hour).Milliseconds()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "3", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(`{"prices":[[` + itoa(base) + `,1],[` + itoa(base+day) + `,2],[` + itoa(base+2*day) + `,3]],` +
			`"total_volumes":[[` + itoa(base) + `,10],[` + itoa(base+day) + `,20],[` + itoa(base+2*day) + `,30]]}`))
	}))
	defer srv.Close()

	src := NewGeckoSource(time.Second)
	src.baseURL = srv.URL

	cs, err := src.Fetch(context.Background(), "BTCUSDT", models.Interval1d, 3)
	require.NoError(t, err)
	require.Len(t, cs, 3)
	require.Equal(t, 3.0, cs[2].Close)
	require.Equal(t, 2.0, cs[2].Open)
	require.Equal(t, 30.0, cs[2].Volume)

	_, err = src.Fetch(context.Background(), "NOPEUSDT", models.Interval1d, 3)
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestPaprikaSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tickers/eth-ethereum" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"quotes":{"USD":{"price":3300,"volume_24h":2400000,"percent_change_24h":10}}}`))
	}))
	defer srv.Close()

	gen := NewSynthetic(3).WithClock(func() time.Time { return fixedNow })
	src := NewPaprikaSource(time.Second, gen)
	src.baseURL = srv.URL

	cs, err := src.Fetch(context.Background(), "ETHUSDT", models.Interval4h, 60)
	require.NoError(t, err)
	require.Len(t, cs, 60)
	require.InDelta(t, 3300, cs[len(cs)-1].Close, 3300*0.03)

	_, err = src.Fetch(context.Background(), "BTCUSDT", models.Interval4h, 60)
	require.Error(t, err, "404 surfaces as error")
}

func TestParseKline(t *testing.T) {
	c, err := parseKline(&binance.Kline{
		OpenTime: fixedNow.UnixMilli(),
		Open:     "1.5", High: "2", Low: "1", Close: "1.75", Volume: "1000",
	})
	require.NoError(t, err)
	require.Equal(t, models.Candle{OpenTime: fixedNow, Open: 1.5, High: 2, Low: 1, Close: 1.75, Volume: 1000}, c)

	_, err = parseKline(&binance.Kline{Open: "x"})
	require.Error(t, err)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func TestOKXSource(t *testing.T) {
	t0 := fixedNow.Truncate(4 * time.Hour)
	ms := func(d time.Duration) string { return itoa(t0.Add(d).UnixMilli()) }
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v5/market/candles", r.URL.Path)
		assert.Equal(t, "SOL-USDT", r.URL.Query().Get("instId"))
		assert.Equal(t, "4H", r.URL.Query().Get("bar"))
		assert.Equal(t, "300", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"code":"0","msg":"","data":[` +
			`["` + ms(0) + `","11","12","10","11.5","200","0","0","0"],` +
			`["` + ms(-4*time.Hour) + `","10","11","9","11","100","0","0","1"]]}`))
	}))
	defer srv.Close()

	src := NewOKXSource(time.Second)
	src.baseURL = srv.URL

	cs, err := src.Fetch(context.Background(), "SOLUSDT", models.Interval4h, 500)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	require.True(t, cs[0].OpenTime.Before(cs[1].OpenTime), "ascending after sort")
	require.Equal(t, models.Candle{OpenTime: t0.UTC(), Open: 11, High: 12, Low: 10, Close: 11.5, Volume: 200}, cs[1])

	_, err = src.Fetch(context.Background(), "BTCEUR", models.Interval4h, 10)
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestOKXSourceErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"51001","msg":"Instrument ID does not exist","data":[]}`))
	}))
	defer srv.Close()

	src := NewOKXSource(time.Second)
	src.baseURL = srv.URL

	_, err := src.Fetch(context.Background(), "XUSDT", models.Interval1d, 10)
	require.ErrorContains(t, err, "51001")
}

func TestMexcSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "60m", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(`[[` + itoa(fixedNow.UnixMilli()) + `,"1.5","2","1","1.75","1000",0,"0"]]`))
	}))
	defer srv.Close()

	src := NewMexcSource(time.Second)
	src.baseURL = srv.URL

	cs, err := src.Fetch(context.Background(), "btcusdt", models.Interval("1h"), 10)
	require.NoError(t, err)
	require.Equal(t, []models.Candle{{OpenTime: fixedNow, Open: 1.5, High: 2, Low: 1, Close: 1.75, Volume: 1000}}, cs)

	_, err = parseMexcRow([]any{"x", "1", "1", "1", "1", "1"})
	require.Error(t, err)
}
