package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/adventure-sim/internal/config"
	"github.com/tatianab/adventure-sim/internal/models"
	"github.com/tatianab/adventure-sim/internal/report"
	"github.com/tatianab/adventure-sim/internal/simulation"
)

type model struct {
	replay   models.Replay
	step     int
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(replay models.Replay) model {
	return model{replay: replay}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "right", "l", "n", " ":
			m = m.goTo(m.step + 1)
		case "left", "h", "p":
			m = m.goTo(m.step - 1)
		case "g", "home":
			m = m.goTo(0)
		case "G", "end":
			m = m.goTo(len(m.replay.Steps) - 1)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * 0.75)
		if !m.ready {
			m.viewport = viewport.New(logWidth, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = msg.Height - 4
		}
		m.viewport.SetContent(m.renderLog())
		m.viewport.GotoBottom()
	}

	return m, nil
}

// goTo moves the cursor to step i, clamped to the replay.
func (m model) goTo(i int) model {
	if i < 0 {
		i = 0
	}
	if last := len(m.replay.Steps) - 1; i > last {
		i = last
	}
	m.step = i
	if m.ready {
		m.viewport.SetContent(m.renderLog())
		m.viewport.GotoBottom()
	}
	return m
}

func (m model) View() string {
	if !m.ready {
		return "\n  Loading replay...\n"
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)
	help := helpStyle.Render("←/→ step, g/G first/last, q quit")

	return lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+help)
}

// renderLog renders every step up to the cursor.
func (m model) renderLog() string {
	logWidth := int(float64(m.width) * 0.75)
	var b strings.Builder
	for i, step := range m.replay.Steps {
		if i > m.step {
			break
		}
		if step.Command != "" {
			b.WriteString(userStyle.Width(logWidth).Render("> " + step.Command))
			b.WriteString("\n\n")
		}
		b.WriteString(gameStyle.Width(logWidth).Render(step.Description))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m model) renderState() string {
	if len(m.replay.Steps) == 0 {
		return ""
	}
	step := m.replay.Steps[m.step]

	location := titleStyle.Render("LOCATION") + "\n" + fmt.Sprint(step.LocationID) + "\n\n"
	progress := titleStyle.Render("STEP") + "\n" + fmt.Sprintf("%d / %d", m.step+1, len(m.replay.Steps)) + "\n\n"

	var trail string
	if m.step+1 <= len(m.replay.IDLog) {
		trail = titleStyle.Render("TRAIL") + "\n" + report.Summary(m.replay.IDLog[:m.step+1]) + "\n"
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(location + progress + trail)
}

// Run opens the viewer on replay and blocks until the user quits.
func Run(replay models.Replay) error {
	if len(replay.Steps) == 0 {
		return fmt.Errorf("replay %q has no steps", replay.Name)
	}
	p := tea.NewProgram(NewModel(replay), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Start replays the configured script and opens the viewer on the result.
func Start(cfg *config.Config) error {
	if cfg.ScriptFile == "" {
		return fmt.Errorf("ADVENTURE_SCRIPT is not set")
	}
	script, err := models.LoadScript(cfg.ScriptFile)
	if err != nil {
		return err
	}
	start := script.InitialLocation
	if start == 0 {
		start = cfg.InitialLocation
	}

	var opts []simulation.Option
	if cfg.Strict {
		opts = append(opts, simulation.WithStrictCommands())
	}
	sim, err := simulation.Open(cfg.GameDataFile, start, script.Commands, opts...)
	if err != nil {
		return err
	}
	return Run(sim.Replay("current"))
}
