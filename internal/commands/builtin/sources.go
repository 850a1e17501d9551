package builtin

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"deploykit/pkg/deploytypes"
)

type sourcesMode int

const (
	sourcesList sourcesMode = iota
	sourcesAdd
	sourcesRemove
)

// SourcesCommand implements "deploy sources", which lists, adds and removes
// package sources. Listing is the default when no mode flag is given.
type SourcesCommand struct {
	store  deploytypes.SourceStore
	mode   sourcesMode
	source deploytypes.Source
}

// NewSourcesCommand creates a sources command in list mode.
func NewSourcesCommand(store deploytypes.SourceStore) *SourcesCommand {
	return &SourcesCommand{store: store}
}

// Describe returns the sources command's descriptor.
func (c *SourcesCommand) Describe() deploytypes.CommandDescriptor {
	return deploytypes.CommandDescriptor{
		CanonicalName:    "sources",
		AlternativeNames: []string{"source"},
		ArgumentNames:    []string{"list", "add", "remove", "name", "url", "disable"},
		Usage:            "deploy sources [-list] | -add -name <name> -url <url> [-disable] | -remove -name <name>",
		Description:      "Manage package sources",
	}
}

// Bind selects one of the list, add and remove modes, listing when none
// is given, and validates the arguments that mode needs.
func (c *SourcesCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	list, err := flagValue(args, "list")
	if err != nil {
		return nil, err
	}
	add, err := flagValue(args, "add")
	if err != nil {
		return nil, err
	}
	remove, err := flagValue(args, "remove")
	if err != nil {
		return nil, err
	}

	selected := 0
	for _, set := range []bool{list, add, remove} {
		if set {
			selected++
		}
	}
	if selected > 1 {
		return nil, deploytypes.ErrorInvalidArgument("sources", "only one of -list, -add and -remove may be given")
	}

	bound := *c
	bound.mode = sourcesList
	bound.source = deploytypes.Source{}

	switch {
	case add:
		name, err := requiredValue("sources", args, "name")
		if err != nil {
			return nil, err
		}
		rawURL, err := requiredValue("sources", args, "url")
		if err != nil {
			return nil, err
		}
		if err := validateSourceURL(rawURL); err != nil {
			return nil, err
		}
		disabled, err := flagValue(args, "disable")
		if err != nil {
			return nil, err
		}
		bound.mode = sourcesAdd
		bound.source = deploytypes.Source{Name: name, URL: rawURL, Disabled: disabled}
	case remove:
		name, err := requiredValue("sources", args, "name")
		if err != nil {
			return nil, err
		}
		bound.mode = sourcesRemove
		bound.source = deploytypes.Source{Name: name}
	}
	return &bound, nil
}

// validateSourceURL accepts absolute URLs with a host, and file URLs with a path.
func validateSourceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return deploytypes.ErrorInvalidValue("url", raw, err)
	}
	if u.Scheme == "" {
		return deploytypes.ErrorInvalidValue("url", raw, fmt.Errorf("missing scheme"))
	}
	if u.Host == "" && !(u.Scheme == "file" && u.Path != "") {
		return deploytypes.ErrorInvalidValue("url", raw, fmt.Errorf("missing host"))
	}
	return nil
}

// Execute runs the selected mode against the source store. Removing an
// unknown source exits with 1.
func (c *SourcesCommand) Execute(_ context.Context) (deploytypes.Result, error) {
	switch c.mode {
	case sourcesAdd:
		if err := c.store.Add(c.source); err != nil {
			return deploytypes.Result{}, deploytypes.ErrorCollaborator("sources", err)
		}
		return deploytypes.Success(fmt.Sprintf("Added source %s (%s)", c.source.Name, c.source.URL)), nil
	case sourcesRemove:
		removed, err := c.store.Remove(c.source.Name)
		if err != nil {
			return deploytypes.Result{}, deploytypes.ErrorCollaborator("sources", err)
		}
		if !removed {
			return deploytypes.Result{ExitCode: 1, Message: fmt.Sprintf("No source named %s", c.source.Name)}, nil
		}
		return deploytypes.Success("Removed source " + c.source.Name), nil
	default:
		return c.list()
	}
}

func (c *SourcesCommand) list() (deploytypes.Result, error) {
	sources, err := c.store.List()
	if err != nil {
		return deploytypes.Result{}, deploytypes.ErrorCollaborator("sources", err)
	}
	if len(sources) == 0 {
		return deploytypes.Success("No package sources configured"), nil
	}

	width := 0
	for _, src := range sources {
		if w := ansi.StringWidth(src.Name); w > width {
			width = w
		}
	}
	lines := make([]string, len(sources))
	for i, src := range sources {
		line := src.Name + strings.Repeat(" ", width-ansi.StringWidth(src.Name)) + "  " + src.URL
		if src.Disabled {
			line += "  [disabled]"
		}
		lines[i] = line
	}
	return deploytypes.Success(strings.Join(lines, "\n")), nil
}
