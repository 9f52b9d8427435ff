package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
	"github.com/suderio/pilgrim/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	currentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F25D94"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

const welcome = "Welcome, pilgrims!\nType 'hint' to see what to do, 'help' for every command, 'exit' to quit."

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

// rollLandedMsg arrives when the roll animation is over.
type rollLandedMsg struct{}

type replModel struct {
	app         *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	spinner     spinner.Model
	rollDelay   time.Duration
	rolling     bool
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	saveName    string
	showList    bool
}

func newREPLModel(app *session.Session, saveName string, rollDelay time.Duration) replModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command (e.g., roll, ask Moses, end)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	vp.SetContent(welcome)

	// Configure a minimalist list for autocomplete
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false) // We filter manually
	sugList.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = currentStyle

	return replModel{
		app:         app,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		spinner:     sp,
		rollDelay:   rollDelay,
		history:     []string{},
		historyIdx:  -1,
		logContent:  welcome,
		saveName:    saveName,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

// completions lists what can follow the text typed so far.
func (m *replModel) completions() []string {
	cmds := make([]string, 0, len(parser.Commands)+1)
	for _, c := range parser.Commands {
		cmds = append(cmds, c+" ")
	}
	cmds = append(cmds, "exit")

	board := m.app.Engine().Board()
	var players, locations []string
	if s := m.app.State(); s != nil {
		for _, p := range s.Players {
			players = append(players, p.Name)
		}
	}
	for _, l := range board.Locations() {
		locations = append(locations, l.Name)
	}
	characters := board.Characters()

	prefixed := func(prefix string, names []string) {
		for _, n := range names {
			if strings.Contains(n, " ") {
				n = fmt.Sprintf("%q", n)
			}
			cmds = append(cmds, prefix+n)
		}
	}
	prefixed("ask ", characters)
	prefixed("answer ", characters)
	prefixed("choose helper: ", characters)
	prefixed("choose target: ", players)
	prefixed("choose location: ", locations)
	cmds = append(cmds, "draw blessing", "draw challenge", "choose option: a", "choose option: b",
		"attack wolves", "attack bandits")
	return cmds
}

func (m *replModel) updateSuggestions() {
	val := m.textInput.Value()
	var items []list.Item

	defer func() {
		m.suggestions.SetItems(items)
		m.showList = len(items) > 0
		if m.showList {
			listHeight := min(len(items), 10)
			if listHeight < 4 {
				listHeight = 4
			}
			m.suggestions.SetHeight(listHeight)
			m.suggestions.ResetSelected()
		}
	}()

	if val == "" {
		return
	}
	for _, c := range m.completions() {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(val)) && len(val) < len(c) {
			items = append(items, suggestion(c))
		}
	}
}

func (m *replModel) appendEvents(events []engine.Event, err error) {
	if err != nil {
		m.logContent += fmt.Sprintf("Error: %v\n", err)
		return
	}
	for _, evt := range events {
		if msg := evt.Message(); msg != "" {
			m.logContent += msg + "\n"
		}
	}
}

// submit runs one line of input. A bare roll starts the animation instead of landing at once.
func (m *replModel) submit(val string) tea.Cmd {
	m.logContent += fmt.Sprintf("\n> %s\n", val)

	if strings.EqualFold(val, "roll") && m.rollDelay > 0 && !m.app.State().Rolling {
		events, err := m.app.BeginRoll()
		m.appendEvents(events, err)
		if err != nil {
			return nil
		}
		m.rolling = true
		m.textInput.Blur()
		return tea.Batch(m.spinner.Tick, tea.Tick(m.rollDelay, func(time.Time) tea.Msg { return rollLandedMsg{} }))
	}

	m.appendEvents(m.app.Execute(val))
	return nil
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case rollLandedMsg:
		m.rolling = false
		m.textInput.Focus()
		m.appendEvents(m.app.Execute("roll"))
		m.viewport.SetContent(m.logContent)
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.rolling {
			m.spinner, spCmd = m.spinner.Update(msg)
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		if m.rolling {
			break
		}

		switch msg.Type {
		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.history) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.history[m.historyIdx])
				m.updateSuggestions()
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 && m.historyIdx != -1 {
				if m.historyIdx < len(m.history)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.history[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.updateSuggestions()
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}

			if val != "" {
				// Prevent duplicate history entries
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				spCmd = m.submit(val)
				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			// Normal typing
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	// Calculate accurate heights for dynamic components
	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2 // +2 for autocompleteStyle borders
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	paddingH := 7

	overhead := titleH + stateH + inputH + listAreaHeight + infoH + paddingH + 4

	m.viewport.Height = max(m.height-overhead, 4)

	return m, tea.Batch(tiCmd, vpCmd, lsCmd, spCmd)
}

func (m *replModel) renderState() string {
	state := m.app.State()
	if state == nil {
		return stateBoxStyle.Width(m.width - 4).Render("No game in progress.")
	}
	board := m.app.Engine().Board()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== Turn %d · %s ===\n\n", state.Turn, state.Phase))
	for i, p := range state.Players {
		line := fmt.Sprintf("%-12s %-14s SP %3d  livestock %2d  coins %2d",
			p.Name, board.Space(p.Position).Name, p.VictoryPoints, p.Livestock, p.Coins)
		if len(p.Recruits) > 0 {
			line += "  helpers: " + strings.Join(p.Recruits, ", ")
		}
		if i == state.CurrentPlayer {
			line = currentStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
	if m.rolling {
		sb.WriteString(fmt.Sprintf("%s rolling...", m.spinner.View()))
	} else {
		sb.WriteString(infoStyle.Render(m.app.Hint()))
	}

	return stateBoxStyle.Width(m.width - 4).Render(sb.String())
}

func (m *replModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" Pilgrim | %s ", m.saveName))
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

// RunTUI opens the interactive shell over a session.
func RunTUI(app *session.Session, saveName string, rollDelay time.Duration) error {
	m := newREPLModel(app, saveName, rollDelay)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
