// Package confirm implements the one-line y/n prompt shown before
// destructive operations such as pruning.
package confirm

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// Decision is the outcome of a confirmation prompt.
type Decision int

const (
	// Undecided is the state before the user made a selection
	Undecided Decision = iota

	// Accepted is a positive response
	Accepted

	// Denied is a negative response
	Denied
)

// String satisfies the fmt.Stringer interface
func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// IsAccepted reports whether the positive response was selected.
func (d Decision) IsAccepted() bool {
	return d == Accepted
}

// Mode selects how the prompt reads its answer.
type Mode int

const (
	// Immediate resolves on the first matching keypress, without enter
	Immediate Mode = iota

	// Line reads a full line and resolves it when enter is pressed
	Line
)

// Styles holds the lipgloss styles used for rendering. See
// https://github.com/charmbracelet/lipgloss for styling options.
type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
}

// Model is the bubble tea model behind the prompt.
type Model struct {
	// Prompt is the question to display to the user
	Prompt string

	// PromptPrefix is a character or other indicator rendered before the
	// prompt, separately styled
	PromptPrefix string

	// AcceptText and DenyText are the answer words. Their first letters
	// are what the user types to decide.
	AcceptText string
	DenyText   string

	// Default is the decision taken when the user bails out with ctrl-c
	// or escape
	Default Decision

	// Mode selects between immediate single-key input and line input
	Mode Mode

	// Styles is the group of available styles
	Styles Styles

	input    textinput.Model
	selected Decision
	done     bool
}

// New creates a model with default settings: an immediate y/n prompt
// defaulting to no.
func New() Model {
	return Model{
		PromptPrefix: "? ",
		AcceptText:   "y",
		DenyText:     "n",
		Default:      Denied,
		Mode:         Immediate,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
		},
	}
}

// Selected retrieves the default or user-selected decision.
func (m *Model) Selected() Decision {
	return m.selected
}

// Value returns the selected decision as its answer word.
func (m *Model) Value() string {
	switch m.selected {
	case Accepted:
		return m.AcceptText
	case Denied:
		return m.DenyText
	}
	return ""
}

// Init satisfies the tea.Model interface
func (m *Model) Init() tea.Cmd {
	m.selected = m.Default

	input := textinput.New()
	input.Placeholder = m.placeholder()
	if strings.HasSuffix(m.Prompt, " ") {
		input.Prompt = m.Prompt
	} else {
		input.Prompt = m.Prompt + " "
	}
	input.PromptStyle = m.Styles.Prompt
	input.PlaceholderStyle = m.Styles.Placeholder
	input.TextStyle = m.Styles.Text
	input.CharLimit = max(len(m.AcceptText), len(m.DenyText))
	input.Focus()
	m.input = input
	return nil
}

// placeholder renders the answer words with the default side uppercased,
// in the usual y/N form.
func (m *Model) placeholder() string {
	accept, deny := m.AcceptText, m.DenyText
	switch m.Default {
	case Accepted:
		accept = strings.ToUpper(accept)
	case Denied:
		deny = strings.ToUpper(deny)
	}
	return accept + "/" + deny
}

// Update satisfies the tea.Model interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.selected = m.Default
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.Mode == Line {
				m.decide(m.input.Value())
				m.done = true
				return m, tea.Quit
			}
		default:
			if m.Mode == Immediate && isLetters(msg.String()) {
				if m.decide(msg.String()) {
					m.done = true
					return m, tea.Quit
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// decide maps typed text onto a decision by its first letter. Unmatched
// input leaves the previous selection in place and reports false.
func (m *Model) decide(text string) bool {
	switch k := strings.ToLower(text); {
	case k == "":
		return false
	case strings.HasPrefix(strings.ToLower(m.AcceptText), k[:1]):
		m.selected = Accepted
	case strings.HasPrefix(strings.ToLower(m.DenyText), k[:1]):
		m.selected = Denied
	default:
		return false
	}
	return true
}

// View satisfies the tea.Model interface
func (m *Model) View() string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		prefix := m.Styles.PromptPrefix.Inline(true).Render
		b.WriteString(prefix(m.PromptPrefix))
		if !strings.HasSuffix(m.PromptPrefix, " ") {
			b.WriteString(prefix(" "))
		}
	}

	if m.done {
		// Keep the question and the answer on screen after quitting,
		// like AlecAivazis/survey does.
		prompt := m.Styles.Prompt.Inline(true).Render
		b.WriteString(prompt(m.Prompt))
		b.WriteString(prompt(" "))
		b.WriteString(m.Value())
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(m.input.View())
	return b.String()
}

func isLetters(s string) bool {
	return s != "" && !strings.ContainsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
