package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/catalogctl/internal/forms"
)

// Form layout.
const (
	formInputWidth = 50
	formModalWidth = 60
)

// FormModel is a modal form built from a schema. It collects values and
// shows field errors; saving is done by the owning list screen.
type FormModel struct {
	schema     forms.Schema
	inputs     []textinput.Model
	focus      int
	errors     map[string]string
	submitting bool

	// editID is the id of the edited resource, "" when adding.
	editID string
}

// NewFormModel builds a form for schema, prefilled from initial.
func NewFormModel(schema forms.Schema, editID string, initial map[string]string) *FormModel {
	inputs := make([]textinput.Model, len(schema.Fields))
	for i, f := range schema.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.Width = formInputWidth
		ti.SetValue(initial[f.Name])
		// Limit typing only; an over-long prefill is kept for the validator to report.
		if f.MaxLength > 0 {
			ti.CharLimit = f.MaxLength
		}
		inputs[i] = ti
	}

	m := &FormModel{schema: schema, inputs: inputs, editID: editID, errors: map[string]string{}}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

// EditID returns the id of the edited resource.
func (m *FormModel) EditID() string {
	return m.editID
}

// Values returns the current field values keyed by field name.
func (m *FormModel) Values() forms.Values {
	values := make(forms.Values, len(m.inputs))
	for i, f := range m.schema.Fields {
		values[f.Name] = m.inputs[i].Value()
	}
	return values
}

// SetValue sets a field value by name.
func (m *FormModel) SetValue(name, value string) {
	for i, f := range m.schema.Fields {
		if f.Name == name {
			m.inputs[i].SetValue(value)
		}
	}
}

// SetErrors replaces the field errors. Focus moves to the first failing field.
func (m *FormModel) SetErrors(errs map[string]string) {
	m.errors = errs
	if m.errors == nil {
		m.errors = map[string]string{}
	}
	for i, f := range m.schema.Fields {
		if _, failed := m.errors[f.Name]; failed {
			m.setFocus(i)
			return
		}
	}
}

// Errors returns the field errors.
func (m *FormModel) Errors() map[string]string {
	return m.errors
}

// SetSubmitting marks a save as in flight.
func (m *FormModel) SetSubmitting(v bool) {
	m.submitting = v
}

// formSubmitMsg asks the owner to validate and save the form.
type formSubmitMsg struct{}

// formCancelMsg asks the owner to close the form.
type formCancelMsg struct{}

// Update handles focus movement, submit and cancel.
func (m *FormModel) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			return func() tea.Msg { return formCancelMsg{} }
		case keyTab, "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return nil
		case keyShiftTab, "up":
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return nil
		case keyEnter, "ctrl+s":
			if m.submitting {
				return nil
			}
			if keyMsg.String() == keyEnter && m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return nil
			}
			return func() tea.Msg { return formSubmitMsg{} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *FormModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// View renders the modal.
func (m *FormModel) View(width int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.schema.Title))
	b.WriteString("\n\n")

	for i, f := range m.schema.Fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		b.WriteString(LabelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg := m.errors[f.Name]; msg != "" {
			b.WriteString(CriticalStyle.Render(f.Label + " " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString(InfoStyle.Render("Saving..."))
	} else {
		b.WriteString(SubtleStyle.Render("tab: next field • enter/ctrl+s: save • esc: cancel"))
	}

	return ModalStyle.Width(min(width-borderPadding, formModalWidth)).Render(b.String())
}
