package assetlist

import (
	"context"
	"sync"

	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/ui/tools"
	"github.com/sat20-labs/walletkit/wallet"
)

var log = common.GetLoggerEntry("assetlist")

const (
	DEFAULT_PAGE_SIZE = 100

	TOTAL_LOADING = -1
)

type State int

const (
	StateLoading State = iota
	StateEmpty
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	default:
		return "ready"
	}
}

type AssetProvider interface {
	GetGlittrAssetList(ctx context.Context, address string, cursor, size int) (*wallet.AssetList, error)
}

type Pagination struct {
	CurrentPage int
	PageSize    int
}

// List is the token list of the current account, one page at a time.
type List struct {
	provider AssetProvider
	host     tools.Host

	mutex      sync.Mutex
	address    string
	chain      string
	tokens     []*common.AssetBalance
	total      int
	pagination Pagination

	generation uint64
	cancel     context.CancelFunc
}

func NewList(provider AssetProvider, host tools.Host, address, chain string) *List {
	return &List{
		provider:   provider,
		host:       host,
		address:    address,
		chain:      chain,
		total:      TOTAL_LOADING,
		pagination: Pagination{CurrentPage: 1, PageSize: DEFAULT_PAGE_SIZE},
	}
}

// Fetch loads the current page. Results of an older fetch that finish
// after a newer one started are dropped.
func (p *List) Fetch(ctx context.Context) error {
	p.mutex.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.generation++
	gen := p.generation
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	address := p.address
	page := p.pagination
	p.mutex.Unlock()
	defer cancel()

	cursor := (page.CurrentPage - 1) * page.PageSize
	ret, err := p.provider.GetGlittrAssetList(ctx, address, cursor, page.PageSize)

	p.mutex.Lock()
	defer p.mutex.Unlock()
	if gen != p.generation {
		return context.Canceled
	}
	p.cancel = nil
	if err != nil {
		log.Errorf("GetGlittrAssetList %s failed, %v", address, err)
		if p.host.Toaster != nil {
			p.host.Toaster.ToastError(err.Error())
		}
		return err
	}
	p.tokens = ret.List
	p.total = ret.Total
	return nil
}

// SetPage changes the page and refetches.
func (p *List) SetPage(ctx context.Context, page int) error {
	p.mutex.Lock()
	if page < 1 {
		page = 1
	}
	p.pagination.CurrentPage = page
	p.mutex.Unlock()
	return p.Fetch(ctx)
}

// SetAccount switches address or chain and refetches from the first page.
// A loaded list of the same account is kept as it is.
func (p *List) SetAccount(ctx context.Context, address, chain string) error {
	p.mutex.Lock()
	if address == p.address && chain == p.chain && p.total != TOTAL_LOADING {
		p.mutex.Unlock()
		return nil
	}
	p.address = address
	p.chain = chain
	p.tokens = nil
	p.total = TOTAL_LOADING
	p.pagination.CurrentPage = 1
	p.mutex.Unlock()
	return p.Fetch(ctx)
}

func (p *List) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.generation++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *List) State() State {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	switch p.total {
	case TOTAL_LOADING:
		return StateLoading
	case 0:
		return StateEmpty
	default:
		return StateReady
	}
}

func (p *List) Tokens() []*common.AssetBalance {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]*common.AssetBalance{}, p.tokens...)
}

func (p *List) Total() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.total
}

func (p *List) Pagination() Pagination {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.pagination
}

func (p *List) PageCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.total <= 0 {
		return 0
	}
	return (p.total + p.pagination.PageSize - 1) / p.pagination.PageSize
}

// Open navigates to the token screen of the i-th token on the page.
func (p *List) Open(i int) bool {
	p.mutex.Lock()
	if i < 0 || i >= len(p.tokens) {
		p.mutex.Unlock()
		return false
	}
	runeid := p.tokens[i].RuneId
	p.mutex.Unlock()

	if p.host.Navigator != nil {
		p.host.Navigator.Navigate(tools.SCREEN_RUNES_TOKEN, map[string]interface{}{"runeid": runeid})
	}
	return true
}
