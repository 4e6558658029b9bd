package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// difficultyChoices lists the presets offered by the menu.
// The empty preset keeps whatever the config file says.
var difficultyChoices = []struct {
	preset config.DifficultyPreset
	label  string
}{
	{"", "As configured"},
	{config.DifficultyEasy, "Easy (few 4s, slowly more)"},
	{config.DifficultyNormal, "Normal"},
	{config.DifficultyHard, "Hard (many 4s)"},
	{config.DifficultyFixed, "Fixed (no progression)"},
	{config.DifficultyClassic, "Classic (only 2s)"},
}

// MenuSelection holds the user's choice from the menu.
type MenuSelection struct {
	GameID     string
	Difficulty config.DifficultyPreset
}

// MenuModel lets users choose a variant and then a difficulty preset.
type MenuModel struct {
	games      []registry.GameInfo
	cursor     int
	diffCursor int
	inDiffStep bool
	width      int
	height     int
	keyMapper  *KeyMapper
	selection  MenuSelection
	choosing   bool
	quitting   bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		games:     registry.List(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inDiffStep {
			return m.handleDifficultyKey(action)
		}
		return m.handleVariantKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleVariantKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(0, m.cursor-1)
	case MenuActionDown:
		m.cursor = min(len(m.games)-1, m.cursor+1)
	case MenuActionSelect:
		if len(m.games) > 0 {
			m.inDiffStep = true
			m.diffCursor = 0
		}
	}
	return m, nil
}

func (m MenuModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.inDiffStep = false
	case MenuActionUp:
		m.diffCursor = max(0, m.diffCursor-1)
	case MenuActionDown:
		m.diffCursor = min(len(difficultyChoices)-1, m.diffCursor+1)
	case MenuActionSelect:
		m.choosing = false
		m.selection = MenuSelection{
			GameID:     m.games[m.cursor].ID,
			Difficulty: difficultyChoices[m.diffCursor].preset,
		}
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current step.
func (m MenuModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("2 0 4 8", m.width)))
	b.WriteString("\n\n")

	if m.inDiffStep {
		b.WriteString(centerText(fmt.Sprintf("%s - select difficulty:", m.games[m.cursor].Title), m.width))
		b.WriteString("\n\n")
		for i, c := range difficultyChoices {
			b.WriteString(centerText(menuLine(i == m.diffCursor, c.label), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("Select variant:", m.width))
		b.WriteString("\n\n")
		for i, g := range m.games {
			b.WriteString(centerText(menuLine(i == m.cursor, g.Title), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))
	return b.String()
}

func menuLine(selected bool, label string) string {
	if selected {
		return "> " + label
	}
	return "  " + label
}

// Selected returns the selection, or nil if still choosing or quit.
func (m MenuModel) Selected() *MenuSelection {
	if m.choosing || m.quitting {
		return nil
	}
	return &m.selection
}

// RunMenu runs the menu and returns the selection, nil if the user quit.
func RunMenu(width, height int) (*MenuSelection, error) {
	p := tea.NewProgram(
		NewMenuModel(width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
