package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
)

const tileWidth = 10

var tileBase = lipgloss.NewStyle().Width(tileWidth).Align(lipgloss.Center)

// kindStyles maps tile kinds to lipgloss styles.
var kindStyles = map[mindgrid.Kind]lipgloss.Style{
	mindgrid.KindNumber:    tileBase.Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	mindgrid.KindBonus:     tileBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
	mindgrid.KindChain:     tileBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")),
	mindgrid.KindRisk:      tileBase.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
	mindgrid.KindRare:      tileBase.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("12")).Bold(true),
	mindgrid.KindEpic:      tileBase.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("13")).Bold(true),
	mindgrid.KindLegendary: tileBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("208")).Bold(true),
	mindgrid.KindMythic:    tileBase.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("199")).Bold(true),
	mindgrid.KindRelic:     tileBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Bold(true),
	mindgrid.KindExotic:    tileBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("46")).Bold(true),
	mindgrid.KindCosmic:    tileBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("51")).Bold(true),
}

var (
	consumedStyle = tileBase.Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	goodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

// tileText returns the label of a tile. Masked risk tiles hide their value.
func tileText(t mindgrid.Tile, masked bool) string {
	if t.Consumed {
		return "·"
	}
	if masked && t.Kind == mindgrid.KindRisk {
		return "RISK ???"
	}
	switch t.Kind {
	case mindgrid.KindNumber:
		return fmt.Sprintf("%d", t.Value)
	case mindgrid.KindRisk:
		return fmt.Sprintf("RISK %+d", t.Value)
	default:
		return fmt.Sprintf("%s %d", t.Kind.Label(), t.Value)
	}
}

// renderTile renders one cell. The cursor cell is drawn reversed.
func renderTile(t mindgrid.Tile, masked, cursor bool) string {
	style := consumedStyle
	if !t.Consumed {
		if s, ok := kindStyles[t.Kind]; ok {
			style = s
		}
	}
	if cursor {
		style = style.Reverse(true).Bold(true)
	}
	return style.Render(tileText(t, masked))
}

// renderGrid draws the grid with one blank line between rows.
func renderGrid(g mindgrid.Grid, cursor mindgrid.Position, masked bool) string {
	rows := make([]string, 0, len(g)*2)
	for r, row := range g {
		cells := make([]string, len(row))
		for c, t := range row {
			cells[c] = renderTile(t, masked, cursor == mindgrid.Position{Row: r, Col: c})
		}
		if r > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers a multi-line block within given width.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
