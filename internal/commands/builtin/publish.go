package builtin

import (
	"context"

	"deploykit/pkg/deploytypes"
)

// PublishCommand implements "deploy publish", which pushes a built package
// to a package source.
type PublishCommand struct {
	publisher deploytypes.Publisher
	req       deploytypes.PublishRequest
	bound     bool
}

// NewPublishCommand creates an unbound publish command.
func NewPublishCommand(publisher deploytypes.Publisher) *PublishCommand {
	return &PublishCommand{publisher: publisher}
}

// Describe returns the publish command's descriptor.
func (c *PublishCommand) Describe() deploytypes.CommandDescriptor {
	return deploytypes.CommandDescriptor{
		CanonicalName:    "publish",
		AlternativeNames: []string{"push"},
		ArgumentNames:    []string{"file", "source", "apikey"},
		Usage:            "deploy publish -file <package> [-source <name>] [-apikey <key>]",
		Description:      "Push a package to a source",
	}
}

// Bind reads the package file and the optional source and API key.
func (c *PublishCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	file, err := requiredValue("publish", args, "file")
	if err != nil {
		return nil, err
	}

	bound := *c
	bound.req = deploytypes.PublishRequest{
		File:   file,
		Source: optionalValue(args, "source", ""),
		APIKey: optionalValue(args, "apikey", ""),
	}
	bound.bound = true
	return &bound, nil
}

// Execute pushes the package file to the selected source.
func (c *PublishCommand) Execute(ctx context.Context) (deploytypes.Result, error) {
	if !c.bound {
		return deploytypes.Result{}, deploytypes.ErrorMissingArgument("publish", "file")
	}
	if err := c.publisher.Publish(ctx, c.req); err != nil {
		return deploytypes.Result{}, deploytypes.ErrorCollaborator("publish", err)
	}

	msg := "Published " + c.req.File
	if c.req.Source != "" {
		msg += " to " + c.req.Source
	}
	return deploytypes.Success(msg), nil
}
