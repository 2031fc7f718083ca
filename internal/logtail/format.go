package logtail

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Entry is one parsed debug-log line.
type Entry struct {
	Time    string
	Level   string
	Message string
	// Fields holds the structured context, key-sorted for stable output.
	Fields []Field
}

// Field is one structured key/value pair from a log line.
type Field struct {
	Key   string
	Value string
}

var levelStyles = map[string]lipgloss.Style{
	"debug": lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
	"info":  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
	"warn":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	"error": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
)

// ParseLine parses one JSON log line. ok is false when the line is not a
// structured entry, in which case callers should show it verbatim.
func ParseLine(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}

	entry := Entry{
		Time:    stringValue(raw["ts"]),
		Level:   stringValue(raw["level"]),
		Message: stringValue(raw["msg"]),
	}
	if entry.Level == "" || entry.Message == "" {
		return Entry{}, false
	}

	for key, value := range raw {
		switch key {
		case "ts", "level", "msg", "caller", "stacktrace":
			continue
		}
		entry.Fields = append(entry.Fields, Field{Key: key, Value: stringValue(value)})
	}
	sort.Slice(entry.Fields, func(i, j int) bool {
		return entry.Fields[i].Key < entry.Fields[j].Key
	})
	return entry, true
}

// Render formats an entry for terminal display with the level and field
// names highlighted.
func (e Entry) Render() string {
	var b strings.Builder
	if e.Time != "" {
		b.WriteString(timeStyle.Render(e.Time))
		b.WriteString(" ")
	}

	level := strings.ToUpper(e.Level)
	if style, ok := levelStyles[strings.ToLower(e.Level)]; ok {
		level = style.Render(level)
	}
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(e.Message)

	for _, f := range e.Fields {
		b.WriteString(" ")
		b.WriteString(fieldStyle.Render(f.Key + "="))
		b.WriteString(f.Value)
	}
	return b.String()
}

// RenderLines parses and renders each line, passing unparseable lines
// through unchanged.
func RenderLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if entry, ok := ParseLine(line); ok {
			out[i] = entry.Render()
		} else {
			out[i] = line
		}
	}
	return out
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(raw)
	}
}
