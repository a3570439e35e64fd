package tools

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/sat20-labs/walletkit/common"
)

const (
	SCREEN_SEND_ATOMICALS_INSCRIPTION = "SendAtomicalsInscriptionScreen"
	SCREEN_RUNES_TOKEN                = "RunesTokenScreen"
)

type Toaster interface {
	ToastSuccess(msg string)
	ToastError(msg string)
}

type Clipboard interface {
	Copy(text string) error
}

type Navigator interface {
	Navigate(screen string, params map[string]interface{})
}

type LinkOpener interface {
	Open(url string)
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

func (SystemClipboard) Unsupported() bool {
	return clipboard.Unsupported
}

// LogToaster prints toasts to the log, for hosts without a toast surface.
type LogToaster struct{}

func (LogToaster) ToastSuccess(msg string) {
	common.Log.Info(msg)
}

func (LogToaster) ToastError(msg string) {
	common.Log.Error(msg)
}

// Recorder keeps everything the screens asked the host to do.
// Hosts that render the calls themselves read them back.
type Recorder struct {
	mutex      sync.Mutex
	toasts     []string
	errors     []string
	copied     []string
	links      []string
	screen     string
	params     map[string]interface{}
	CopyFailed error
}

func (p *Recorder) ToastSuccess(msg string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.toasts = append(p.toasts, msg)
}

func (p *Recorder) ToastError(msg string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.errors = append(p.errors, msg)
}

func (p *Recorder) Open(url string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.links = append(p.links, url)
}

func (p *Recorder) Copy(text string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.CopyFailed != nil {
		return p.CopyFailed
	}
	p.copied = append(p.copied, text)
	return nil
}

func (p *Recorder) Navigate(screen string, params map[string]interface{}) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.screen = screen
	p.params = params
}

func (p *Recorder) Toasts() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]string{}, p.toasts...)
}

func (p *Recorder) Errors() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]string{}, p.errors...)
}

func (p *Recorder) Copied() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]string{}, p.copied...)
}

func (p *Recorder) Links() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]string{}, p.links...)
}

func (p *Recorder) Screen() (string, map[string]interface{}) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.screen, p.params
}

// Drain returns and clears pending toasts and errors.
func (p *Recorder) Drain() ([]string, []string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	toasts, errs := p.toasts, p.errors
	p.toasts, p.errors = nil, nil
	return toasts, errs
}
