package builtin

import (
	"context"
	"fmt"
	"strings"

	"deploykit/internal/matcher"
	"deploykit/pkg/deploytypes"
)

// HelpCommand implements "deploy help". Without arguments it lists every
// registered command in registry order; "-command <name>" shows the page of
// the command that name resolves to, using the same matching rules as the
// command line.
type HelpCommand struct {
	renderer deploytypes.HelpRenderer
	catalog  func() []deploytypes.Command
	topic    string
}

// NewHelpCommand creates a help command. catalog returns the registered
// commands; it is called on every execution.
func NewHelpCommand(renderer deploytypes.HelpRenderer, catalog func() []deploytypes.Command) *HelpCommand {
	return &HelpCommand{renderer: renderer, catalog: catalog}
}

// Describe returns the help command's descriptor.
func (c *HelpCommand) Describe() deploytypes.CommandDescriptor {
	return deploytypes.CommandDescriptor{
		CanonicalName:    "help",
		AlternativeNames: []string{"?"},
		ArgumentNames:    []string{"command"},
		Usage:            "deploy help [-command <name>]",
		Description:      "Show command help",
	}
}

// Bind reads the optional -command topic.
func (c *HelpCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	bound := *c
	bound.topic = optionalValue(args, "command", "")
	return &bound, nil
}

// Execute renders the command list, or the help page of the command the
// topic resolves to. The topic matches like a command token.
func (c *HelpCommand) Execute(_ context.Context) (deploytypes.Result, error) {
	cmds := c.catalog()

	if c.topic == "" {
		descriptors := make([]deploytypes.CommandDescriptor, len(cmds))
		for i, cmd := range cmds {
			descriptors[i] = cmd.Describe()
		}
		out, err := c.renderer.RenderList(descriptors)
		if err != nil {
			return deploytypes.Result{}, deploytypes.ErrorCollaborator("help", err)
		}
		return deploytypes.Success(strings.TrimRight(out, "\n")), nil
	}

	matches, err := matcher.CommandNameMatcher{}.Matches(cmds, c.topic)
	if err != nil {
		return deploytypes.Result{}, err
	}
	if len(matches) == 0 {
		return deploytypes.Result{
			ExitCode: 1,
			Message:  fmt.Sprintf("Unknown command: %s. Run 'deploy help' for a list of commands.", c.topic),
		}, nil
	}

	out, err := c.renderer.RenderCommand(matches[0].Describe())
	if err != nil {
		return deploytypes.Result{}, deploytypes.ErrorCollaborator("help", err)
	}
	return deploytypes.Success(strings.TrimRight(out, "\n")), nil
}
