package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
)

// maxPickLevel is the highest level offered by the level picker.
const maxPickLevel = 60

// LevelSelectModel is the level picker. Runs started here begin at zero points.
type LevelSelectModel struct {
	engine       *mindgrid.Engine
	cursor       int // 0-based, level = cursor+1
	width        int
	height       int
	keyMapper    *KeyMapper
	selected     *StartPoint
	quitting     bool
	back         bool
	scrollOffset int
}

// NewLevelSelectModel creates a new level selection model.
func NewLevelSelectModel(engine *mindgrid.Engine, width, height int) LevelSelectModel {
	return LevelSelectModel{
		engine:    engine,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < maxPickLevel-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionLeft:
		m.cursor = max(0, m.cursor-10)
		m.updateScroll()
	case MenuActionRight:
		m.cursor = min(maxPickLevel-1, m.cursor+10)
		m.updateScroll()
	case MenuActionSelect:
		m.selected = &StartPoint{Level: m.cursor + 1}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelSelectModel) visibleItems() int {
	return max(3, m.height-10)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelSelectModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// levelLine describes one level's structure and goal.
func (m LevelSelectModel) levelLine(level int) string {
	p, err := m.engine.Profile(level)
	if err != nil {
		return fmt.Sprintf("%3d  ?", level)
	}
	return fmt.Sprintf("%3d   %dx%d   %2d turns   %4.1fs   goal %4d",
		level, p.GridSize, p.GridSize, p.Turns, p.TurnBudget.Seconds(), m.engine.RequiredGain(level))
}

// View renders the level selection.
func (m LevelSelectModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S E L E C T   L E V E L"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Practice runs start with a score of zero."), m.width))
	b.WriteString("\n\n")

	end := min(maxPickLevel, m.scrollOffset+m.visibleItems())
	if m.scrollOffset > 0 {
		b.WriteString(centerText(dimStyle.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+m.levelLine(i+1), m.width))
		b.WriteString("\n")
	}
	if end < maxPickLevel {
		b.WriteString(centerText(dimStyle.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: +/-10  |  Enter: Play  |  Esc: Back  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen start point, or nil if none.
func (m LevelSelectModel) Selected() *StartPoint {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker and returns the chosen start point.
func RunLevelSelector(cfg core.RuntimeConfig) (*StartPoint, error) {
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	model := NewLevelSelectModel(engine, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
