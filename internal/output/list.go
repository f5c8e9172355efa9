// Package output renders githooks listings and tables for the terminal.
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/githooks/internal/shared"
)

// Group is a named, ordered set of list items.
type Group struct {
	Name  string
	Items []string
	// Empty is shown in place of Items when there are none.
	Empty string
}

// ListRenderer formats titled lists.
type ListRenderer struct {
	titleStyle  lipgloss.Style
	itemStyle   lipgloss.Style
	bulletStyle lipgloss.Style
	bullet      string
	indent      string
}

// NewListRenderer creates a new list renderer with default styling.
func NewListRenderer() *ListRenderer {
	return &ListRenderer{
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(shared.Magenta),
		itemStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")), // Text
		bulletStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb")), // Sky
		bullet:      "•",
		indent:      "  ",
	}
}

// Render formats a title and list of items.
func (l *ListRenderer) Render(title string, items []string) string {
	var sb strings.Builder

	l.writeTitle(&sb, title)
	for _, item := range items {
		sb.WriteString(l.indent)
		sb.WriteString(l.bulletStyle.Render(l.bullet))
		sb.WriteString(" ")
		sb.WriteString(l.itemStyle.Render(item))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderMap formats a title and map of key-value pairs, sorted by key.
func (l *ListRenderer) RenderMap(title string, items map[string]string) string {
	var sb strings.Builder

	l.writeTitle(&sb, title)

	keys := make([]string, 0, len(items))
	maxKeyLen := 0
	for key := range items {
		keys = append(keys, key)
		if len(key) > maxKeyLen {
			maxKeyLen = len(key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(l.indent)
		sb.WriteString(l.bulletStyle.Render(fmt.Sprintf("%-*s", maxKeyLen, key)))
		sb.WriteString(": ")
		sb.WriteString(l.itemStyle.Render(items[key]))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderGrouped formats items grouped by category, in the order given.
func (l *ListRenderer) RenderGrouped(title string, groups []Group) string {
	var sb strings.Builder

	l.writeTitle(&sb, title)
	for _, g := range groups {
		sb.WriteString(l.indent)
		sb.WriteString(l.bulletStyle.Render(g.Name))
		sb.WriteString(":\n")

		if len(g.Items) == 0 && g.Empty != "" {
			sb.WriteString(l.indent)
			sb.WriteString(l.indent)
			sb.WriteString(shared.DimStyle.Render(g.Empty))
			sb.WriteString("\n")
			continue
		}
		for i, item := range g.Items {
			sb.WriteString(l.indent)
			sb.WriteString(l.indent)
			sb.WriteString(l.itemStyle.Render(fmt.Sprintf("%d. %s", i+1, item)))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (l *ListRenderer) writeTitle(sb *strings.Builder, title string) {
	if title == "" {
		return
	}
	sb.WriteString(l.titleStyle.Render(title))
	sb.WriteString("\n")
}
