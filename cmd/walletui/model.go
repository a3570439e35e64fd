package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/ui/assetlist"
	"github.com/sat20-labs/walletkit/ui/feerate"
	"github.com/sat20-labs/walletkit/ui/inscription"
	"github.com/sat20-labs/walletkit/ui/tools"
	"github.com/sat20-labs/walletkit/wallet"
)

var log = common.GetLoggerEntry("walletui")

type view int

const (
	viewFee view = iota
	viewDetail
	viewAssets
	viewCount
)

type (
	feeLoadedMsg    struct{ err error }
	rateMsg         float64
	assetsLoadedMsg struct{ err error }
	detailLoadedMsg struct {
		detail *inscription.Detail
		err    error
	}
	stuckMsg struct{ err error }
)

// clipboard falls back to the recorder where the OS clipboard is missing.
type clipboard struct {
	recorder *tools.Recorder
}

func (c clipboard) Copy(text string) error {
	sys := tools.SystemClipboard{}
	if sys.Unsupported() {
		return c.recorder.Copy(text)
	}
	return sys.Copy(text)
}

// rateBox keeps only the newest rate. The notify slot wakes the reader
// once however many rates arrived since it last looked.
type rateBox struct {
	mutex  sync.Mutex
	rate   float64
	notify chan struct{}
}

func newRateBox() *rateBox {
	return &rateBox{notify: make(chan struct{}, 1)}
}

func (b *rateBox) put(rate float64) {
	b.mutex.Lock()
	b.rate = rate
	b.mutex.Unlock()
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *rateBox) wait() float64 {
	<-b.notify
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.rate
}

type model struct {
	provider wallet.Provider
	params   *params
	recorder *tools.Recorder
	host     tools.Host
	rates    *rateBox

	view     view
	selector *feerate.Selector
	assets   *assetlist.List
	detail   *inscription.Detail

	input   textinput.Model
	spinner spinner.Model

	feeLoading    bool
	detailLoading bool
	detailErr     error
	rate          float64
	rateEmitted   bool
	detailCursor  int
	assetCursor   int
	linksShown    int
	status        []string
	width         int
}

func newModel(provider wallet.Provider, p *params) *model {
	m := &model{
		provider: provider,
		params:   p,
		recorder: &tools.Recorder{},
		rates:    newRateBox(),
	}
	m.host = tools.Host{
		Toaster:   m.recorder,
		Clipboard: clipboard{recorder: m.recorder},
		Navigator: m.recorder,
		Links:     m.recorder,
		ResetTransactions: func() {
			log.Info("pending transactions reset")
		},
	}

	m.selector = feerate.NewSelector(provider, feerate.Options{
		ReadOnly: p.readOnly,
		OnChange: m.rates.put,
		Notify: m.recorder,
	})
	m.assets = assetlist.NewList(provider, m.host, p.address, p.chain)

	m.input = textinput.New()
	m.input.Placeholder = "sat/vB"
	m.input.CharLimit = 16
	m.input.Width = 12

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.feeLoading = true
	m.detailLoading = p.inscriptionId != ""
	return m
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadFees(), m.waitRate()}
	if m.params.address != "" {
		cmds = append(cmds, m.fetchAssets(func(ctx context.Context) error {
			return m.assets.Fetch(ctx)
		}))
	}
	if m.params.inscriptionId != "" {
		cmds = append(cmds, m.loadDetail())
	}
	return tea.Batch(cmds...)
}

func (m *model) loadFees() tea.Cmd {
	return func() tea.Msg {
		err := m.selector.Load(context.Background())
		return feeLoadedMsg{err: err}
	}
}

func (m *model) waitRate() tea.Cmd {
	return func() tea.Msg {
		return rateMsg(m.rates.wait())
	}
}

func (m *model) fetchAssets(fetch func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return assetsLoadedMsg{err: fetch(context.Background())}
	}
}

func (m *model) loadDetail() tea.Cmd {
	id := m.params.inscriptionId
	return func() tea.Msg {
		utxo, err := m.provider.GetUtxoByInscriptionId(context.Background(), id)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		for _, ins := range utxo.Inscriptions {
			if ins.InscriptionId != id {
				continue
			}
			detail := inscription.NewDetail(ins, inscription.Config{
				Chain:    m.params.chain,
				Address:  m.params.address,
				Provider: m.provider,
				Host:     m.host,
			})
			return detailLoadedMsg{detail: detail}
		}
		return detailLoadedMsg{err: errors.Wrapf(common.ErrInscriptionNotFound, "%s", id)}
	}
}

func (m *model) detectStuck() tea.Cmd {
	detail := m.detail
	return func() tea.Msg {
		_, err := detail.DetectMultiStuck(context.Background())
		return stuckMsg{err: err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case feeLoadedMsg:
		if !errors.Is(msg.err, feerate.ErrStale) {
			m.feeLoading = false
		}

	case rateMsg:
		m.rate = float64(msg)
		m.rateEmitted = true
		cmds = append(cmds, m.waitRate())

	case assetsLoadedMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			log.Errorf("fetch assets failed, %v", msg.err)
		}
		if m.assetCursor >= len(m.assets.Tokens()) {
			m.assetCursor = 0
		}

	case detailLoadedMsg:
		m.detailLoading = false
		if msg.err != nil {
			m.detailErr = msg.err
			m.recorder.ToastError(msg.err.Error())
			break
		}
		m.detail = msg.detail
		cmds = append(cmds, m.detectStuck())

	case stuckMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			log.Errorf("detect multi stuck failed, %v", msg.err)
		}

	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			m.close()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	}

	m.collectStatus()
	return m, tea.Batch(cmds...)
}

func (m *model) close() {
	m.selector.Close()
	m.assets.Close()
	if m.detail != nil {
		m.detail.Close()
	}
}

func (m *model) collectStatus() {
	toasts, errs := m.recorder.Drain()
	for _, t := range toasts {
		m.pushStatus(t)
	}
	for _, e := range errs {
		m.pushStatus("error: " + e)
	}
	links := m.recorder.Links()
	for _, link := range links[m.linksShown:] {
		m.pushStatus("open " + link)
	}
	m.linksShown = len(links)
	if screen, params := m.recorder.Screen(); screen != "" {
		m.pushStatus(fmt.Sprintf("navigate %s %v", screen, params))
		m.recorder.Navigate("", nil)
	}
}

func (m *model) pushStatus(s string) {
	if len(m.status) > 0 && m.status[len(m.status)-1] == s {
		return
	}
	m.status = append(m.status, s)
	if len(m.status) > 5 {
		m.status = m.status[len(m.status)-5:]
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return nil, true
	}
	if key == "tab" {
		m.view = (m.view + 1) % viewCount
		return m.syncInput(), false
	}

	switch m.view {
	case viewFee:
		return m.handleFeeKey(msg)
	case viewDetail:
		return m.handleDetailKey(key), key == "q"
	case viewAssets:
		return m.handleAssetKey(key), key == "q"
	}
	return nil, false
}

func (m *model) handleFeeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "left":
		m.selector.Select(m.selector.Selected() - 1)
		return m.syncInput(), false
	case "right":
		m.selector.Select(m.selector.Selected() + 1)
		return m.syncInput(), false
	case "ctrl+r":
		m.feeLoading = true
		return m.loadFees(), false
	}

	if !m.selector.CustomInputVisible() {
		return nil, msg.String() == "q"
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != m.selector.CustomText() {
		m.input.SetValue(m.selector.SetCustomInput(text))
	}
	return cmd, false
}

// syncInput focuses the custom input when the custom tile is on screen.
func (m *model) syncInput() tea.Cmd {
	if m.view == viewFee && m.selector.CustomInputVisible() {
		m.input.SetValue(m.selector.CustomText())
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *model) handleDetailKey(key string) tea.Cmd {
	if m.detail == nil {
		return nil
	}
	sections := m.detail.Sections()
	switch key {
	case "up":
		if m.detailCursor > 0 {
			m.detailCursor--
		}
	case "down":
		if m.detailCursor < len(sections)-1 {
			m.detailCursor++
		}
	case "enter":
		m.detail.Activate(sections[m.detailCursor])
	case "s":
		if !m.detail.Send() {
			m.pushStatus("inscription belongs to another address")
		}
	}
	return nil
}

func (m *model) handleAssetKey(key string) tea.Cmd {
	page := m.assets.Pagination().CurrentPage
	switch key {
	case "up":
		if m.assetCursor > 0 {
			m.assetCursor--
		}
	case "down":
		if m.assetCursor < len(m.assets.Tokens())-1 {
			m.assetCursor++
		}
	case "enter":
		m.assets.Open(m.assetCursor)
	case "right", "n":
		if page < m.assets.PageCount() {
			m.assetCursor = 0
			return m.fetchAssets(func(ctx context.Context) error {
				return m.assets.SetPage(ctx, page+1)
			})
		}
	case "left", "p":
		if page > 1 {
			m.assetCursor = 0
			return m.fetchAssets(func(ctx context.Context) error {
				return m.assets.SetPage(ctx, page-1)
			})
		}
	}
	return nil
}
