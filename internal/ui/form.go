package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coworkcli/cowork/internal/booking"
)

// Form steps, in order.
type formStep int

const (
	stepRoom formStep = iota
	stepDate
	stepStart
	stepEnd
	stepConfirm
)

const inputCount = 3

// FormModel is the interactive booking form: pick an available room with
// the cursor, then fill date and time fields, then confirm. The assembled
// request is available from Result after the program finishes.
type FormModel struct {
	theme  Theme
	styles Styles
	keys   keyMap

	rooms  []booking.Room
	cursor int

	step       formStep
	inputs     [inputCount]textinput.Model
	violations []string

	confirmed bool
	aborted   bool
}

// NewForm builds a booking form over the available rooms. defaultRoom,
// when it names an available room, pre-positions the cursor.
func NewForm(rooms []booking.Room, defaultRoom, themeName string) FormModel {
	available := make([]booking.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Available {
			available = append(available, room)
		}
	}

	theme := GetTheme(themeName)
	m := FormModel{
		theme:  theme,
		styles: theme.Styles(),
		keys:   DefaultKeyMap(),
		rooms:  available,
	}

	for i, cfg := range []struct{ placeholder string }{
		{"YYYY-MM-DD"},
		{"HH:MM"},
		{"HH:MM"},
	} {
		input := textinput.New()
		input.Placeholder = cfg.placeholder
		input.CharLimit = 10
		input.Width = 12
		m.inputs[i] = input
	}

	for i, room := range available {
		if strings.EqualFold(room.Name, defaultRoom) {
			m.cursor = i
			break
		}
	}
	return m
}

// Result returns the assembled request and whether the user confirmed it.
func (m FormModel) Result() (booking.Request, bool) {
	return m.request(), m.confirmed
}

func (m FormModel) request() booking.Request {
	req := booking.Request{
		Date:      strings.TrimSpace(m.inputs[0].Value()),
		StartTime: strings.TrimSpace(m.inputs[1].Value()),
		EndTime:   strings.TrimSpace(m.inputs[2].Value()),
	}
	if m.cursor < len(m.rooms) {
		req.RoomName = m.rooms[m.cursor].Name
	}
	return req
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.Quit) {
		m.aborted = true
		return m, tea.Quit
	}
	if key.Matches(keyMsg, m.keys.CycleTheme) && m.step == stepRoom {
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		return m, nil
	}

	switch m.step {
	case stepRoom:
		return m.updateRoomStep(keyMsg)
	case stepDate, stepStart, stepEnd:
		return m.updateInputStep(keyMsg)
	case stepConfirm:
		return m.updateConfirmStep(keyMsg)
	}
	return m, nil
}

func (m FormModel) updateRoomStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rooms)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		if len(m.rooms) == 0 {
			m.aborted = true
			return m, tea.Quit
		}
		m.step = stepDate
		m.inputs[0].Focus()
	case key.Matches(msg, m.keys.Back):
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m FormModel) updateInputStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := int(m.step - stepDate)

	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.inputs[idx].Blur()
		if m.step == stepEnd {
			m.violations = booking.ValidateRequest(m.request())
			if len(m.violations) > 0 {
				// Send the user back to the first field; the findings stay
				// on screen until the next submit.
				m.step = stepDate
				m.inputs[0].Focus()
				return m, nil
			}
			m.step = stepConfirm
			return m, nil
		}
		m.step++
		m.inputs[idx+1].Focus()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.inputs[idx].Blur()
		if m.step == stepDate {
			m.step = stepRoom
		} else {
			m.step--
			m.inputs[idx-1].Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m FormModel) updateConfirmStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirmed = true
		return m, tea.Quit
	case "n", "N", "esc":
		m.step = stepRoom
		m.violations = nil
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m FormModel) View() string {
	var b strings.Builder

	switch m.step {
	case stepRoom:
		b.WriteString(m.styles.Heading.Render("Select a room"))
		b.WriteString("\n\n")
		if len(m.rooms) == 0 {
			b.WriteString(m.styles.MutedText.Render("No available rooms."))
			b.WriteString("\n")
			break
		}
		for i, room := range m.rooms {
			line := fmt.Sprintf("%-24s %2dp  %s", truncate(room.Name, 24), room.Capacity, room.HourlyPrice)
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(m.styles.RoomText(room.ID).Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.FaintText.Render("j/k move · enter select · T theme · esc cancel"))
	case stepDate, stepStart, stepEnd:
		b.WriteString(m.styles.Heading.Render("Book " + m.request().RoomName))
		b.WriteString("\n\n")
		for i, label := range []string{"Date", "Start time", "End time"} {
			marker := "  "
			if int(m.step-stepDate) == i {
				marker = m.styles.AccentText.Render("> ")
			}
			b.WriteString(fmt.Sprintf("%s%-11s %s\n", marker, label+":", m.inputs[i].View()))
		}
		for _, violation := range m.violations {
			b.WriteString(m.styles.DangerText.Render("  " + violation))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.FaintText.Render("enter next · esc back"))
	case stepConfirm:
		req := m.request()
		b.WriteString(m.styles.Heading.Render("Confirm booking"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Room:  %s\n", req.RoomName))
		b.WriteString(fmt.Sprintf("  Date:  %s\n", req.Date))
		b.WriteString(fmt.Sprintf("  Time:  %s - %s\n", req.StartTime, req.EndTime))
		b.WriteString("\n")
		b.WriteString(m.styles.FaintText.Render("y/enter confirm · n start over"))
	}

	b.WriteString("\n")
	return b.String()
}
