package inscription

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/ui/tools"
)

var log = common.GetLoggerEntry("inscription")

const (
	TITLE             = "Atomicals Inscription"
	UNCONFIRMED_TITLE = "Atomicals Inscription (not confirmed yet)"
	MULTI_STUCK_TEXT  = "Multiple inscriptions are mixed together. Please split them first."
	UNCONFIRMED       = "unconfirmed"
	COPIED            = "Copied"

	// 12 hour clock, as the wallet has always shown it
	TIMESTAMP_LAYOUT = "2006-01-02 03:04:05"
)

type UtxoProvider interface {
	GetUtxoByInscriptionId(ctx context.Context, inscriptionId string) (*common.UtxoInscriptions, error)
}

// Section is one labelled value on the screen. Activating a section with a
// link opens it, otherwise the value is copied.
type Section struct {
	Title string
	Value string
	Link  string
}

type Config struct {
	Chain string
	// address of the current account
	Address  string
	Provider UtxoProvider
	Host     tools.Host
	// nil means time.Local
	Location *time.Location
}

type Detail struct {
	ins  *common.Inscription
	conf Config

	mutex      sync.Mutex
	multiStuck bool
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

func NewDetail(ins *common.Inscription, conf Config) *Detail {
	if conf.Location == nil {
		conf.Location = time.Local
	}
	return &Detail{ins: ins, conf: conf}
}

func (p *Detail) Inscription() *common.Inscription {
	return p.ins
}

// CanSend is true when the inscription belongs to the current account.
func (p *Detail) CanSend() bool {
	return p.conf.Address != "" && p.conf.Address == p.ins.Address
}

func (p *Detail) Title() string {
	if !p.ins.IsConfirmed() {
		return UNCONFIRMED_TITLE
	}
	return TITLE
}

func (p *Detail) Timestamp() string {
	if !p.ins.IsConfirmed() {
		return UNCONFIRMED
	}
	return time.Unix(p.ins.Timestamp, 0).In(p.conf.Location).Format(TIMESTAMP_LAYOUT)
}

func (p *Detail) Sections() []Section {
	ins := p.ins
	return []Section{
		{Title: "atomicals id", Value: ins.InscriptionId},
		{Title: "atomicals number", Value: strconv.FormatInt(ins.InscriptionNumber, 10)},
		{Title: "address", Value: ins.Address},
		{Title: "output value", Value: strconv.FormatInt(ins.OutputValue, 10)},
		{Title: "preview", Value: ins.Preview, Link: ins.Preview},
		{Title: "content", Value: ins.Content, Link: ins.Content},
		{Title: "content length", Value: strconv.FormatInt(ins.ContentLength, 10)},
		{Title: "content type", Value: ins.ContentType},
		{Title: "timestamp", Value: p.Timestamp()},
		{Title: "genesis transaction", Value: ins.GenesisTransaction,
			Link: common.TxExplorerUrl(p.conf.Chain, ins.GenesisTransaction)},
	}
}

// DetectMultiStuck asks the backend whether the inscription shares its
// utxo with others.
func (p *Detail) DetectMultiStuck(ctx context.Context) (bool, error) {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return false, context.Canceled
	}
	if p.cancel != nil {
		p.cancel()
	}
	p.generation++
	gen := p.generation
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mutex.Unlock()
	defer cancel()

	utxo, err := p.conf.Provider.GetUtxoByInscriptionId(ctx, p.ins.InscriptionId)

	p.mutex.Lock()
	if p.closed || gen != p.generation {
		p.mutex.Unlock()
		return false, context.Canceled
	}
	p.cancel = nil
	if err != nil {
		p.mutex.Unlock()
		log.Warnf("GetUtxoByInscriptionId %s failed, %v", p.ins.InscriptionId, err)
		if p.conf.Host.Toaster != nil {
			p.conf.Host.Toaster.ToastError(err.Error())
		}
		return false, err
	}
	if utxo != nil && len(utxo.Inscriptions) > 1 {
		p.multiStuck = true
	}
	stuck := p.multiStuck
	p.mutex.Unlock()
	return stuck, nil
}

func (p *Detail) MultiStuck() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.multiStuck
}

// Warning is the text shown under the title, empty when there is none.
func (p *Detail) Warning() string {
	if p.MultiStuck() {
		return MULTI_STUCK_TEXT
	}
	return ""
}

func (p *Detail) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.closed = true
	p.generation++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Detail) Activate(section Section) {
	host := p.conf.Host
	if section.Link != "" {
		if host.Links != nil {
			host.Links.Open(section.Link)
		}
		return
	}
	if host.Clipboard == nil {
		return
	}
	if err := host.Clipboard.Copy(section.Value); err != nil {
		log.Warnf("copy %s failed, %v", section.Title, err)
		return
	}
	if host.Toaster != nil {
		host.Toaster.ToastSuccess(COPIED)
	}
}

// Send starts the send flow. It is a no-op for inscriptions of other accounts.
func (p *Detail) Send() bool {
	if !p.CanSend() {
		return false
	}
	host := p.conf.Host
	if host.ResetTransactions != nil {
		host.ResetTransactions()
	}
	if host.Navigator != nil {
		host.Navigator.Navigate(tools.SCREEN_SEND_ATOMICALS_INSCRIPTION, map[string]interface{}{
			"inscription": p.ins,
		})
	}
	return true
}
