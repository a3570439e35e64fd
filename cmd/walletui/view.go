package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sat20-labs/walletkit/ui/assetlist"
	"github.com/sat20-labs/walletkit/ui/feerate"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tabStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTab  = tabStyle.Copy().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tileStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(18)

	selectedTile = tileStyle.Copy().BorderForeground(lipgloss.Color("214"))
	descStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var tabNames = []string{"Fee", "Inscription", "Assets"}

func (m *model) View() string {
	var b strings.Builder

	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if view(i) == m.view {
			tabs = append(tabs, activeTab.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch m.view {
	case viewFee:
		b.WriteString(m.feeView())
	case viewDetail:
		b.WriteString(m.detailView())
	case viewAssets:
		b.WriteString(m.assetView())
	}

	b.WriteString("\n")
	for _, s := range m.status {
		b.WriteString(statusStyle.Render(s))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab: switch view  ctrl+c: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *model) feeView() string {
	if m.feeLoading {
		return m.spinner.View() + " loading fee rates\n"
	}

	tiles := m.selector.Tiles()
	if len(tiles) == 0 {
		return "no fee rates, ctrl+r to retry\n"
	}
	rendered := make([]string, 0, len(tiles))
	for _, tile := range tiles {
		rendered = append(rendered, renderTile(tile))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
	if m.selector.CustomInputVisible() {
		b.WriteString("custom rate: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.rateEmitted {
		b.WriteString(titleStyle.Render(fmt.Sprintf("fee rate: %s sat/vB", feerate.FormatRate(m.rate))))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("left/right: select  ctrl+r: reload"))
	b.WriteString("\n")
	return b.String()
}

func renderTile(tile feerate.Tile) string {
	lines := []string{titleStyle.Render(tile.Title)}
	if tile.RateLabel != "" {
		lines = append(lines, tile.RateLabel)
	}
	if tile.Desc != "" {
		lines = append(lines, descStyle.Render(tile.Desc))
	}
	style := tileStyle
	if tile.Selected {
		style = selectedTile
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *model) detailView() string {
	if m.params.inscriptionId == "" {
		return "start with -inscription <id> to show an inscription\n"
	}
	if m.detailLoading {
		return m.spinner.View() + " loading inscription\n"
	}
	if m.detail == nil {
		return warnStyle.Render(fmt.Sprintf("%v", m.detailErr)) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.detail.Title()))
	b.WriteString("\n\n")
	for i, section := range m.detail.Sections() {
		prefix := "  "
		if i == m.detailCursor {
			prefix = cursorStyle.Render("> ")
		}
		value := section.Value
		if section.Link != "" {
			value += " ↗"
		}
		b.WriteString(fmt.Sprintf("%s%-20s %s\n", prefix, section.Title, value))
	}
	if m.detail.MultiStuck() {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(m.detail.Warning()))
		b.WriteString("\n")
	}
	help := "up/down: move  enter: open or copy"
	if m.detail.CanSend() {
		help += "  s: send"
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

func (m *model) assetView() string {
	if m.params.address == "" {
		return "start with -address <address> to list assets\n"
	}

	switch m.assets.State() {
	case assetlist.StateLoading:
		return m.spinner.View() + " loading assets\n"
	case assetlist.StateEmpty:
		return "Empty\n"
	}

	var b strings.Builder
	page := m.assets.Pagination()
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d tokens, page %d/%d", m.assets.Total(), page.CurrentPage, m.assets.PageCount())))
	b.WriteString("\n\n")
	for i, token := range m.assets.Tokens() {
		prefix := "  "
		if i == m.assetCursor {
			prefix = cursorStyle.Render("> ")
		}
		name := token.SpacedRune
		if name == "" {
			name = token.Rune
		}
		b.WriteString(fmt.Sprintf("%s%-28s %s %s\n", prefix, name, token.Amount, token.Symbol))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("up/down: move  enter: open  left/right: page"))
	b.WriteString("\n")
	return b.String()
}
