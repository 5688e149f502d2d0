// Package prompt runs the interactive command prompt used when stdin is a terminal.
package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kula-app/parking-lot/internal/command"
	"github.com/kula-app/parking-lot/internal/errors"
)

// ExitCommand ends the prompt
const ExitCommand = "exit"

// Applier applies one input line, see session.Session
type Applier interface {
	Apply(line string) (*command.Result, error)
}

// Model is the bubbletea model of the prompt
type Model struct {
	input    textinput.Model
	applier  Applier
	render   func(command.Result) string
	err      error
	quitting bool
}

// New creates a prompt model. render formats results for the terminal.
func New(applier Applier, render func(command.Result) string, prompt string) Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "Create_parking_lot 6"
	ti.CharLimit = 256
	ti.Focus()

	return Model{
		input:   ti,
		applier: applier,
		render:  render,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit applies the current line and echoes it with its result above the input
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	if strings.TrimSpace(line) == ExitCommand {
		m.quitting = true
		return m, tea.Quit
	}

	cmds := []tea.Cmd{tea.Println(m.input.Prompt + line)}

	res, err := m.applier.Apply(line)
	if res != nil {
		cmds = append(cmds, tea.Println(m.render(*res)))
	}
	if err != nil {
		m.err = err
		m.quitting = true
		cmds = append(cmds, tea.Quit)
	}

	return m, tea.Sequence(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.input.View() + "\n"
}

// Err returns the error that ended the prompt, if any
func (m Model) Err() error {
	return m.err
}

// Run shows the prompt on in/out until the user exits, ctx is cancelled or a
// result is fatal
func Run(ctx context.Context, in io.Reader, out io.Writer, m Model) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ExitGeneralError, "failed to run prompt", err)
	}

	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return fmt.Errorf("unexpected prompt model %T", final)
}
