package feerate

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/ui/tools"
	"github.com/sat20-labs/walletkit/wallet"
)

var log = common.GetLoggerEntry("feerate")

// ErrStale is returned by Load when the selector was reloaded or closed
// while the fetch was in flight. The result has been dropped.
var ErrStale = errors.New("stale fee summary dropped")

type FeeProvider interface {
	GetFeeSummary(ctx context.Context) (*wallet.FeeSummary, error)
}

type Options struct {
	ReadOnly bool
	// called with the effective rate after every recomputation
	OnChange func(rate float64)
	// fetch failures are reported here
	Notify tools.Toaster
}

// Tile is what the host draws for one option.
type Tile struct {
	Title     string
	RateLabel string // empty for the custom tile
	Desc      string
	Selected  bool
	Custom    bool
}

// Selector holds the state of the fee rate bar: the presets, the selected
// slot and the custom input buffer.
type Selector struct {
	provider FeeProvider
	opts     Options

	mutex      sync.Mutex
	options    []Option
	selected   int
	customText string
	loaded     bool
	mounted    bool

	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

func NewSelector(provider FeeProvider, opts Options) *Selector {
	return &Selector{
		provider: provider,
		opts:     opts,
		selected: AVERAGE_INDEX,
	}
}

// Load fetches the presets. The first call emits the default rate before
// fetching. A newer Load or Close makes the result of an older one stale.
// A failed fetch is reported through Notify and leaves the option list empty.
func (s *Selector) Load(ctx context.Context) error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return ErrStale
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	// the host hears the default rate right away, before any preset arrives
	first := !s.mounted
	s.mounted = true
	rate := s.rate()
	s.mutex.Unlock()
	defer cancel()

	if first {
		s.emit(rate)
	}

	summary, err := s.provider.GetFeeSummary(ctx)

	s.mutex.Lock()
	if s.closed || gen != s.generation {
		s.mutex.Unlock()
		log.Debugf("drop fee summary of generation %d", gen)
		return ErrStale
	}
	s.cancel = nil
	if err != nil {
		s.options = nil
		s.loaded = true
		s.mutex.Unlock()
		log.Warnf("GetFeeSummary failed, %v", err)
		if s.opts.Notify != nil {
			s.opts.Notify.ToastError(err.Error())
		}
		return err
	}

	options := make([]Option, 0, len(summary.List)+1)
	for _, item := range summary.List {
		options = append(options, Option{Title: item.Title, Desc: item.Desc, FeeRate: item.FeeRate})
	}
	if !s.opts.ReadOnly {
		options = append(options, CustomOption())
	}
	s.options = options
	s.loaded = true
	rate = s.rate()
	s.mutex.Unlock()

	s.emit(rate)
	return nil
}

// Close stops any fetch in flight. Later results are dropped.
func (s *Selector) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Selector) rate() float64 {
	return ComputeEffectiveRate(s.options, s.selected, s.customText)
}

func (s *Selector) emit(rate float64) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(rate)
	}
}

// Select picks the option at index and emits the new rate. Read-only
// selectors ignore it, as do indexes outside the list.
func (s *Selector) Select(index int) bool {
	if s.opts.ReadOnly {
		return false
	}
	s.mutex.Lock()
	if index < 0 || index >= len(s.options) {
		s.mutex.Unlock()
		return false
	}
	s.selected = index
	rate := s.rate()
	s.mutex.Unlock()

	s.emit(rate)
	return true
}

// SetCustomInput applies an edit of the custom field and emits the rate.
// It does nothing unless the custom slot is selected.
func (s *Selector) SetCustomInput(text string) string {
	s.mutex.Lock()
	if !s.customSelected() {
		text = s.customText
		s.mutex.Unlock()
		return text
	}
	s.customText = AdjustCustomInput(text, s.options)
	text = s.customText
	rate := s.rate()
	s.mutex.Unlock()

	s.emit(rate)
	return text
}

func (s *Selector) customSelected() bool {
	return s.selected >= 0 && s.selected < len(s.options) && s.options[s.selected].Custom
}

func (s *Selector) Tiles() []Tile {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tiles := make([]Tile, 0, len(s.options))
	for i, o := range s.options {
		tile := Tile{
			Title:    o.Title,
			Selected: !s.opts.ReadOnly && i == s.selected,
			Custom:   o.Custom,
		}
		if !o.Custom {
			tile.RateLabel = fmt.Sprintf("%s %s", FormatRate(o.FeeRate), common.FEE_RATE_UNIT)
			tile.Desc = o.Desc
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

func (s *Selector) CustomInputVisible() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.customSelected()
}

func (s *Selector) CustomText() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.customText
}

func (s *Selector) Selected() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.selected
}

func (s *Selector) Loaded() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.loaded
}

// Rate is the current effective rate.
func (s *Selector) Rate() float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.rate()
}
