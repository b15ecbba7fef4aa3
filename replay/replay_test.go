package replay

import (
	"math"
	"testing"

	"github.com/evdnx/mktsim/config"
	"github.com/evdnx/mktsim/market"
	"github.com/evdnx/mktsim/regime"
	"github.com/evdnx/mktsim/testutils"
	"github.com/evdnx/mktsim/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* --- Test 1 – window drops the oldest values --------------------------- */
func TestWindow_Bounded(t *testing.T) {
	w := newWindow(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.push(v)
	}
	assert.Equal(t, 3, w.len())
	assert.Equal(t, []float64{3, 4, 5}, w.tail(10))
	assert.Equal(t, []float64{4, 5}, w.tail(1))
}

/* --- Test 2 – trend, slope and volatility on a straight line ------------ */
func TestWindow_Statistics(t *testing.T) {
	up := newWindow(16)
	for i := 0; i < 10; i++ {
		up.push(100 + 2*float64(i))
	}
	assert.Equal(t, 1, up.trend())
	assert.InDelta(t, 2.0, up.slope(), 1e-9)
	assert.InDelta(t, 2.0, up.volatility(), 1e-9)

	down := newWindow(16)
	for i := 0; i < 10; i++ {
		down.push(100 - float64(i))
	}
	assert.Equal(t, -1, down.trend())
	assert.InDelta(t, -1.0, down.slope(), 1e-9)

	flat := newWindow(16)
	for _, v := range []float64{100, 101, 100, 101, 100, 101, 100} {
		flat.push(v)
	}
	assert.Equal(t, 0, flat.trend())
	assert.InDelta(t, 1.0, flat.volatility(), 1e-9)

	empty := newWindow(4)
	empty.push(1)
	assert.Equal(t, 0, empty.trend())
	assert.Zero(t, empty.slope())
	assert.Zero(t, empty.volatility())
}

/* --- Test 3 – a full replay over a generated path ----------------------- */
func TestRun_GeneratedPath(t *testing.T) {
	path := market.New(100, 99, []market.RegimeAssignment{
		{Regime: regime.BullVolatile(1), StartDay: 0, EndDay: 80},
		{Regime: regime.BearVolatile(1), StartDay: 80, EndDay: 160},
	}, market.WithSeed(21))

	log := testutils.NewMockLogger()
	snaps, err := Run(path, types.MidSeries, config.DefaultReplayConfig(), log)
	require.NoError(t, err)
	require.Len(t, snaps, path.TotalDays()+1)

	mid, _ := path.MidPrices(0, -1)
	sawRSI := false
	for i, s := range snaps {
		assert.Equal(t, i, s.Day)
		assert.Equal(t, mid[i], s.Close)
		assert.True(t, s.Ready, "day %d", i)
		if !math.IsNaN(s.RSI) {
			sawRSI = true
			assert.GreaterOrEqual(t, s.RSI, 0.0)
			assert.LessOrEqual(t, s.RSI, 100.0)
		}
		assert.False(t, s.Overbought && s.Oversold)
		assert.False(t, s.HMABullish && s.HMABearish)
		assert.GreaterOrEqual(t, s.Volatility, 0.0)
	}
	assert.True(t, sawRSI)
	assert.Equal(t, 1, log.Count("replay_finished"))
}

/* --- Test 4 – bad input is reported before any work -------------------- */
func TestRun_Errors(t *testing.T) {
	path := market.New(100, 99, []market.RegimeAssignment{{Regime: regime.NewGBM(0, 0.01), StartDay: 0, EndDay: 5}}, market.WithSeed(1))

	_, err := Run(path, types.Series("close"), config.DefaultReplayConfig(), nil)
	assert.ErrorIs(t, err, market.ErrUnknownSeries)

	cfg := config.DefaultReplayConfig()
	cfg.Window = 1
	_, err = Run(path, types.BuySeries, cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
