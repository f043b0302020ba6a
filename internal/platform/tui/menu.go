package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/registry"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

// MenuChoice is what the user picked on the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceLevels
	ChoiceScoreboard
	ChoiceQuit
)

// MenuItem is one selectable line of the main menu.
type MenuItem struct {
	Label  string
	Choice MenuChoice
	Start  StartPoint
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	variants   []registry.Variant
	variantIdx int
	items      []MenuItem
	cursor     int
	width      int
	height     int
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	quitting   bool
	selected   *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	cfg = cfg.Normalize()
	variants := registry.List()

	idx := 0
	for i, v := range variants {
		if v.ID == cfg.Variant {
			idx = i
		}
	}

	m := MenuModel{
		variants:   variants,
		variantIdx: idx,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
	m.rebuild()
	return m
}

// rebuild refreshes the item list for the current variant, offering
// "Continue" when a saved run exists.
func (m *MenuModel) rebuild() {
	if len(m.variants) > 0 {
		m.config.Variant = m.variants[m.variantIdx].ID
	}

	items := []MenuItem{{Label: "New run", Choice: ChoicePlay, Start: StartPoint{Level: 1}}}

	if m.store != nil {
		saved, err := m.store.LoadRun(m.config.PlayerKey(), m.config.Variant)
		if err == nil && saved != nil {
			items = append(items, MenuItem{
				Label:  fmt.Sprintf("Continue (level %d, %d pts)", saved.Level, saved.Score),
				Choice: ChoicePlay,
				Start:  StartPoint{Level: saved.Level, Score: saved.Score},
			})
		}
	}

	items = append(items,
		MenuItem{Label: "Select level", Choice: ChoiceLevels},
		MenuItem{Label: "Scoreboard", Choice: ChoiceScoreboard},
		MenuItem{Label: "Quit", Choice: ChoiceQuit},
	)

	m.items = items
	m.cursor = min(m.cursor, len(items)-1)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft, MenuActionRight:
		if len(m.variants) > 1 {
			step := 1
			if action == MenuActionLeft {
				step = len(m.variants) - 1
			}
			m.variantIdx = (m.variantIdx + step) % len(m.variants)
			m.rebuild()
		}

	case MenuActionScoreboard:
		item := MenuItem{Choice: ChoiceScoreboard}
		m.selected = &item
		return m, tea.Quit

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Choice == ChoiceQuit {
			m.quitting = true
		}
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  M I N D G R I D  "), m.width))
	b.WriteString("\n\n")

	if len(m.variants) > 0 {
		v := m.variants[m.variantIdx]
		b.WriteString(centerText(fmt.Sprintf("<  %s  >", v.Title), m.width))
		b.WriteString("\n")
		if v.Summary != "" {
			b.WriteString(centerText(dimStyle.Render(v.Summary), m.width))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Variant  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config with the chosen variant.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
