package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// GeminiKeyStep collects the Gemini API key used for both pipeline stages.
type GeminiKeyStep struct {
	input textinput.Model
}

func NewGeminiKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "AIza..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &GeminiKeyStep{
		input: ti,
	}
}

func (s *GeminiKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *GeminiKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && s.input.Value() != "" {
			state.EnvVars["GEMINI_API_KEY"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *GeminiKeyStep) View(state *InstallState) string {
	return "Enter your Gemini API Key:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
