package services

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"deploykit/pkg/deploytypes"
)

// HelpService renders command help as plain text or, when styled, with
// lipgloss for listings and glamour for single-command pages.
type HelpService struct {
	styled   bool
	wordWrap int

	nameStyle  lipgloss.Style
	aliasStyle lipgloss.Style
	titleStyle lipgloss.Style
}

// NewHelpService creates a HelpService. styled enables terminal styling.
func NewHelpService(styled bool) *HelpService {
	h := &HelpService{
		styled:     styled,
		wordWrap:   80,
		nameStyle:  lipgloss.NewStyle(),
		aliasStyle: lipgloss.NewStyle(),
		titleStyle: lipgloss.NewStyle(),
	}
	if styled {
		h.nameStyle = h.nameStyle.Bold(true).Foreground(lipgloss.Color("39"))
		h.aliasStyle = h.aliasStyle.Foreground(lipgloss.Color("244"))
		h.titleStyle = h.titleStyle.Bold(true).Underline(true)
	}
	return h
}

// TerminalSupportsStyle reports whether stdout can render colors.
func TerminalSupportsStyle() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

// RenderList renders one line per descriptor, in the given order, with the
// descriptions aligned in a single column.
func (h *HelpService) RenderList(descriptors []deploytypes.CommandDescriptor) (string, error) {
	labels := make([]string, len(descriptors))
	width := 0
	for i, desc := range descriptors {
		label := h.nameStyle.Render(desc.CanonicalName)
		if len(desc.AlternativeNames) > 0 {
			label += " " + h.aliasStyle.Render("("+strings.Join(desc.AlternativeNames, ", ")+")")
		}
		labels[i] = label
		if w := ansi.StringWidth(label); w > width {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString(h.titleStyle.Render("deploykit commands"))
	b.WriteString("\n\n")
	for i, desc := range descriptors {
		pad := width - ansi.StringWidth(labels[i])
		fmt.Fprintf(&b, "  %s%s   %s\n", labels[i], strings.Repeat(" ", pad), desc.Description)
	}
	b.WriteString("\nCommand and argument names may be abbreviated: 'deploy ins -v 1.0' is 'deploy install -version 1.0'.\n")
	b.WriteString("Use 'deploy help -command <name>' for details on a command.\n")
	return b.String(), nil
}

// RenderCommand renders the full help page of one command.
func (h *HelpService) RenderCommand(desc deploytypes.CommandDescriptor) (string, error) {
	if !h.styled {
		return h.plainCommand(desc), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(h.wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(h.markdownCommand(desc))
	if err != nil {
		return "", fmt.Errorf("failed to render help for %s: %w", desc.CanonicalName, err)
	}
	return rendered, nil
}

func (h *HelpService) plainCommand(desc deploytypes.CommandDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Command: %s\n", desc.CanonicalName)
	fmt.Fprintf(&b, "Description: %s\n", desc.Description)
	fmt.Fprintf(&b, "Usage: %s\n", desc.Usage)
	if len(desc.AlternativeNames) > 0 {
		fmt.Fprintf(&b, "Aliases: %s\n", strings.Join(desc.AlternativeNames, ", "))
	}
	if len(desc.ArgumentNames) > 0 {
		fmt.Fprintf(&b, "Arguments: %s\n", dashed(desc.ArgumentNames))
	}
	return b.String()
}

func (h *HelpService) markdownCommand(desc deploytypes.CommandDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", desc.CanonicalName, desc.Description)
	fmt.Fprintf(&b, "**Usage:** `%s`\n\n", desc.Usage)
	if len(desc.AlternativeNames) > 0 {
		fmt.Fprintf(&b, "**Aliases:** %s\n\n", strings.Join(desc.AlternativeNames, ", "))
	}
	if len(desc.ArgumentNames) > 0 {
		b.WriteString("**Arguments:**\n\n")
		for _, arg := range desc.ArgumentNames {
			fmt.Fprintf(&b, "- `-%s`\n", arg)
		}
	}
	return b.String()
}

func dashed(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "-" + n
	}
	return strings.Join(out, " ")
}
