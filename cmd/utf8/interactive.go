package main

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/internal/hexarg"
	"github.com/wippyai/utfcodec/utf16"
	"github.com/wippyai/utfcodec/utf32"
	"github.com/wippyai/utfcodec/utf8"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	formStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	plainStyle = lipgloss.NewStyle()
)

type inputMode int

const (
	modeText inputMode = iota
	modeHex
)

func (m inputMode) String() string {
	if m == modeHex {
		return "hex bytes"
	}
	return "text"
}

// charRow is one character rendered in every form.
type charRow struct {
	cp      codepoint.CodePoint
	utf8    string
	utf16BE string
	utf16LE string
	utf32   string
}

type interactiveModel struct {
	err    error
	codec  utf8.Codec
	hex    hexarg.Formatter
	rows   []charRow
	input  textinput.Model
	mode   inputMode
	policy codepoint.Policy
}

func newInteractiveModel(policy codepoint.Policy, upper bool) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type text"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{
		codec:  utf8.New(policy),
		hex:    hexarg.Formatter{Upper: upper},
		input:  ti,
		policy: policy,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.mode == modeText {
				m.mode = modeHex
				m.input.Placeholder = "type hex bytes, e.g. e282ac"
			} else {
				m.mode = modeText
				m.input.Placeholder = "type text"
			}
			m.input.SetValue("")
			m.rows, m.err = nil, nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.rows, m.err = m.describe(m.input.Value())
	return m, cmd
}

// describe decodes the input under the current mode and renders every
// character. It returns the rows decoded before the first error.
func (m *interactiveModel) describe(value string) ([]charRow, error) {
	var p []byte
	if m.mode == modeHex {
		var err error
		if p, err = hexarg.Bytes(strings.Join(strings.Fields(value), "")); err != nil {
			return nil, err
		}
	} else {
		p = []byte(value)
	}

	var rows []charRow
	for pos := 0; pos < len(p); {
		cp, next, err := m.codec.Decode(p, pos)
		if err != nil {
			return rows, err
		}
		rows = append(rows, m.row(cp, p[pos:next]))
		pos = next
	}
	return rows, nil
}

func (m *interactiveModel) row(cp codepoint.CodePoint, encoded []byte) charRow {
	r := charRow{cp: cp, utf8: m.hex.Bytes(encoded), utf16BE: "-", utf16LE: "-", utf32: "-"}

	if units, err := utf16.AppendCodePoint(nil, cp); err == nil {
		r.utf16BE = m.hex.Bytes(utf16.AppendBytes(nil, units, binary.BigEndian))
		r.utf16LE = m.hex.Bytes(utf16.AppendBytes(nil, units, binary.LittleEndian))
	}
	if units, err := utf32.Encode([]codepoint.CodePoint{cp}, m.policy); err == nil {
		r.utf32 = m.hex.Bytes(utf32.AppendBytes(nil, units, binary.BigEndian))
	}
	return r
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("UTF Inspector"))
	fmt.Fprintf(&b, " %s, %s policy\n\n", m.mode, m.policy)
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.rows) > 0 {
		b.WriteString(tableLine(plainStyle, formStyle, "", "UTF-8", "UTF-16BE", "UTF-16LE", "UTF-32BE"))
	}
	for _, r := range m.rows {
		b.WriteString(tableLine(cpStyle, plainStyle, r.cp.String(), r.utf8, r.utf16BE, r.utf16LE, r.utf32))
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch text/hex • esc quit"))
	return b.String()
}

// columnWidths are the cell widths of the table, separator included. The
// last column is not padded.
var columnWidths = [...]int{11, 15, 13, 13}

// tableLine renders one table line. first styles the leading cell and rest
// the others; padding goes through the style so escape sequences do not
// count toward the width.
func tableLine(first, rest lipgloss.Style, cells ...string) string {
	var b strings.Builder
	for i, cell := range cells {
		style := rest
		if i == 0 {
			style = first
		}
		if i < len(columnWidths) {
			style = style.Width(columnWidths[i])
		}
		b.WriteString(style.Render(cell))
	}
	b.WriteByte('\n')
	return b.String()
}

func runInteractive(policy codepoint.Policy, upper bool) error {
	p := tea.NewProgram(newInteractiveModel(policy, upper), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
