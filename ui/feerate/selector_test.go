package feerate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/ui/tools"
	"github.com/sat20-labs/walletkit/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	list []*common.FeeOption
	err  error
	// the first call waits until its context is cancelled
	blockFirst bool
	calls      int32
}

func (p *stubProvider) GetFeeSummary(ctx context.Context) (*wallet.FeeSummary, error) {
	if atomic.AddInt32(&p.calls, 1) == 1 && p.blockFirst {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if p.err != nil {
		return nil, p.err
	}
	return &wallet.FeeSummary{List: p.list}, nil
}

func newProvider(rates ...float64) *stubProvider {
	p := &stubProvider{}
	for i, r := range rates {
		p.list = append(p.list, &common.FeeOption{
			Title:   []string{"Slow", "Normal", "Fast"}[i%3],
			Desc:    "About 10 minutes",
			FeeRate: r,
		})
	}
	return p
}

type emitted struct {
	mutex sync.Mutex
	rates []float64
}

func (e *emitted) onChange(rate float64) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.rates = append(e.rates, rate)
}

func (e *emitted) all() []float64 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return append([]float64{}, e.rates...)
}

func TestSelector_InitialRate(t *testing.T) {
	var out emitted
	s := NewSelector(newProvider(5, 10, 20), Options{OnChange: out.onChange})
	assert.Equal(t, float64(1), s.Rate())

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []float64{1, 10}, out.all())

	// a reload does not repeat the default
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []float64{1, 10, 10}, out.all())

	tiles := s.Tiles()
	require.Len(t, tiles, 4)
	assert.True(t, tiles[1].Selected)
	assert.Equal(t, "10 sat/vB", tiles[1].RateLabel)
	assert.Equal(t, "About 10 minutes", tiles[1].Desc)
	assert.True(t, tiles[3].Custom)
	assert.Equal(t, common.CUSTOM_FEE_TITLE, tiles[3].Title)
	assert.Empty(t, tiles[3].RateLabel)
	assert.Empty(t, tiles[3].Desc)
	assert.False(t, s.CustomInputVisible())
}

func TestSelector_SelectPreset(t *testing.T) {
	var out emitted
	s := NewSelector(newProvider(5, 10, 20), Options{OnChange: out.onChange})
	require.NoError(t, s.Load(context.Background()))

	assert.True(t, s.Select(0))
	assert.True(t, s.Select(2))
	assert.False(t, s.Select(9))
	assert.Equal(t, []float64{1, 10, 5, 20}, out.all())
	assert.Equal(t, 2, s.Selected())
}

func TestSelector_CustomInput(t *testing.T) {
	var out emitted
	s := NewSelector(newProvider(5, 10, 20), Options{OnChange: out.onChange})
	require.NoError(t, s.Load(context.Background()))

	// ignored while a preset is selected
	assert.Equal(t, "", s.SetCustomInput("33"))

	require.True(t, s.Select(3))
	assert.True(t, s.CustomInputVisible())

	assert.Equal(t, "10000", s.SetCustomInput("20000"))
	assert.Equal(t, "10", s.SetCustomInput("-4"))
	assert.Equal(t, "", s.SetCustomInput("abc"))
	assert.Equal(t, "7.5", s.SetCustomInput("7.5"))
	assert.Equal(t, "7.5", s.CustomText())

	assert.Equal(t, []float64{1, 10, 0, 10000, 10, 0, 7.5}, out.all())

	// back to a preset, the buffer is kept for later
	require.True(t, s.Select(0))
	assert.False(t, s.CustomInputVisible())
	assert.Equal(t, float64(5), s.Rate())
	require.True(t, s.Select(3))
	assert.Equal(t, 7.5, s.Rate())
}

func TestSelector_ReadOnly(t *testing.T) {
	var out emitted
	s := NewSelector(newProvider(5, 10, 20), Options{ReadOnly: true, OnChange: out.onChange})
	require.NoError(t, s.Load(context.Background()))

	for i := 0; i < 3; i++ {
		assert.False(t, s.Select(i))
	}
	assert.Equal(t, AVERAGE_INDEX, s.Selected())
	tiles := s.Tiles()
	require.Len(t, tiles, 3)
	for _, tile := range tiles {
		assert.False(t, tile.Selected)
		assert.False(t, tile.Custom)
	}
	assert.Equal(t, []float64{1, 10}, out.all())
}

func TestSelector_FetchError(t *testing.T) {
	var out emitted
	toasts := &tools.Recorder{}
	p := &stubProvider{err: errors.New("network down")}
	s := NewSelector(p, Options{OnChange: out.onChange, Notify: toasts})

	assert.Error(t, s.Load(context.Background()))
	assert.Empty(t, s.Tiles())
	assert.True(t, s.Loaded())
	assert.Equal(t, []string{"network down"}, toasts.Errors())
	assert.Equal(t, []float64{1}, out.all())
	assert.Equal(t, float64(1), s.Rate())
}

func TestSelector_EmptyPresets(t *testing.T) {
	var out emitted
	s := NewSelector(newProvider(), Options{OnChange: out.onChange})
	require.NoError(t, s.Load(context.Background()))

	require.Len(t, s.Tiles(), 1)
	require.True(t, s.Select(0))
	assert.Equal(t, "7.5", s.SetCustomInput("7.5"))
	assert.Equal(t, 7.5, s.Rate())
	assert.Equal(t, "", s.SetCustomInput(""))
	assert.Equal(t, float64(0), s.Rate())
	assert.Equal(t, "1", s.SetCustomInput("-2"))
}

func waitInFlight(t *testing.T, s *Selector, gen uint64) {
	t.Helper()
	require.Eventually(t, func() bool {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		return s.generation == gen && s.cancel != nil
	}, time.Second, time.Millisecond)
}

func waitEmitted(t *testing.T, out *emitted, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(out.all()) == n }, time.Second, time.Millisecond)
}

func TestSelector_StaleLoadDropped(t *testing.T) {
	var out emitted
	p := newProvider(5, 10, 20)
	p.blockFirst = true
	s := NewSelector(p, Options{OnChange: out.onChange})

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background()) }()
	waitInFlight(t, s, 1)
	// the default is out before any preset arrives
	waitEmitted(t, &out, 1)
	assert.Equal(t, float64(1), s.Rate())
	s.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStale)
	case <-time.After(time.Second):
		t.Fatal("load did not return after close")
	}
	assert.Empty(t, s.Tiles())
	assert.Equal(t, []float64{1}, out.all())
	assert.ErrorIs(t, s.Load(context.Background()), ErrStale)
}

func TestSelector_ReloadSupersedes(t *testing.T) {
	var out emitted
	toasts := &tools.Recorder{}
	p := newProvider(5, 10, 20)
	p.blockFirst = true
	s := NewSelector(p, Options{OnChange: out.onChange, Notify: toasts})

	first := make(chan error, 1)
	go func() { first <- s.Load(context.Background()) }()
	waitInFlight(t, s, 1)
	waitEmitted(t, &out, 1)

	require.NoError(t, s.Load(context.Background()))
	assert.ErrorIs(t, <-first, ErrStale)

	// the cancelled fetch neither emits nor toasts
	assert.Equal(t, []float64{1, 10}, out.all())
	assert.Empty(t, toasts.Errors())
	assert.Len(t, s.Tiles(), 4)
}
