// Package viz renders derivations for the terminal: an interactive step
// viewer and coefficient sweep plots.
package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/isuruf/jumplab/internal/derive"
)

// StepsModel walks the recorded stages of a derivation one at a time.
type StepsModel struct {
	problem string
	steps   []derive.Step
	idx     int
	latex   bool
}

func NewStepsModel(problem string, steps []derive.Step) StepsModel {
	return StepsModel{problem: problem, steps: steps}
}

func (m StepsModel) Init() tea.Cmd { return nil }

func (m StepsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "[":
			if m.idx > 0 {
				m.idx--
			}
		case "right", "l", "]", " ", "enter":
			if m.idx < len(m.steps)-1 {
				m.idx++
			}
		case "g":
			m.idx = 0
		case "G":
			m.idx = len(m.steps) - 1
		case "x":
			m.latex = !m.latex
		}
	}
	return m, nil
}

func (m StepsModel) View() string {
	if len(m.steps) == 0 {
		return "no steps recorded\n"
	}

	step := m.steps[m.idx]
	body := step.Render()
	if m.latex {
		body = step.RenderLaTeX()
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.problem)) + "\n")
	s.WriteString(labelStyle.Render(fmt.Sprintf("step %d/%d  ", m.idx+1, len(m.steps))))
	s.WriteString(stepStyle.Render(step.Name) + "\n\n")
	s.WriteString(panelStyle.Render(body) + "\n")
	s.WriteString(helpStyle.Render("←/→ or [ ]: step  g/G: first/last  x: latex  q: quit"))
	return s.String()
}
