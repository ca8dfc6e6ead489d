package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sot/chandra-time/internal/leapsec"
	"github.com/sot/chandra-time/internal/xtime"
)

// Field indices in focus order.
const (
	fieldValue = iota
	fieldSysIn
	fieldFmtIn
	fieldSysOut
	fieldFmtOut
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"value",
	"system in",
	"format in",
	"system out",
	"format out",
}

// Model is the interactive converter: five input fields, converted on
// enter against the live leap-second table.
type Model struct {
	table   *leapsec.Table
	refresh func() // optional staleness check, run before each conversion
	inputs  [fieldCount]textinput.Model
	focus   int

	result string
	errMsg string
	leap   bool
}

// New creates the converter model with sensible starting codes. A non-nil
// refresh runs before each conversion, typically table.MaybeReload, so a
// long session keeps up with leap-second file updates.
func New(table *leapsec.Table, refresh func()) Model {
	m := Model{table: table, refresh: refresh}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		switch i {
		case fieldValue:
			ti.Placeholder = "seconds, 0x hex, d:h:m:s, JD/MJD, or a date"
			ti.CharLimit = 64
			ti.Width = 44
		default:
			ti.CharLimit = 4
			ti.Width = 6
		}
		m.inputs[i] = ti
	}
	m.inputs[fieldSysIn].SetValue("t")
	m.inputs[fieldFmtIn].SetValue("s")
	m.inputs[fieldSysOut].SetValue("u")
	m.inputs[fieldFmtOut].SetValue("f3")
	m.inputs[fieldValue].Focus()

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown:
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case tea.KeyEnter:
			m.convert()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// convert runs the conversion for the current field values and stores
// either the result or the error message.
func (m *Model) convert() {
	m.result, m.errMsg = "", ""
	m.leap = false

	value := strings.TrimSpace(m.inputs[fieldValue].Value())
	if value == "" {
		return
	}
	if m.refresh != nil {
		m.refresh()
	}

	out, err := xtime.Convert(m.table,
		value,
		strings.TrimSpace(m.inputs[fieldSysIn].Value()),
		strings.TrimSpace(m.inputs[fieldFmtIn].Value()),
		strings.TrimSpace(m.inputs[fieldSysOut].Value()),
		strings.TrimSpace(m.inputs[fieldFmtOut].Value()))
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.result = out

	// Re-parse to learn whether the instant falls inside an inserted
	// leap second; parse errors were already caught above.
	t, err := xtime.ParseValue(m.table,
		value,
		strings.TrimSpace(m.inputs[fieldSysIn].Value()),
		strings.TrimSpace(m.inputs[fieldFmtIn].Value()))
	if err == nil {
		m.leap = t.InLeapSecond()
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("axtime converter"))
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		label := fieldLabels[i]
		if i == m.focus {
			b.WriteString(selectionIndicator)
			b.WriteString(styleLabelFocused.Render(fmt.Sprintf("%-11s", label)))
		} else {
			b.WriteString(" ")
			b.WriteString(styleLabel.Render(fmt.Sprintf("%-11s", label)))
		}
		b.WriteString(" ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.errMsg != "":
		b.WriteString(styleError.Render(m.errMsg))
		b.WriteString("\n")
	case m.result != "":
		b.WriteString(styleResult.Render(m.result))
		if m.leap {
			b.WriteString(" ")
			b.WriteString(styleLeap.Render("(inside a leap second)"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleHint.Render("tab: next field · enter: convert · esc: quit"))

	return styleFrame.Render(b.String())
}
