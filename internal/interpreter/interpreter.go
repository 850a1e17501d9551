// Package interpreter turns a raw argument vector into a bound command.
//
// The first token selects a command from the registry: the first command,
// in registry order, whose canonical name equals or starts with the token,
// or whose alternative name equals it. The remaining tokens are parsed into
// named arguments and each is bound onto the first declared argument name it
// abbreviates. Unknown arguments are discarded and later bindings override
// earlier ones. The interpreter never executes the command it returns.
package interpreter

import (
	"strings"

	"github.com/charmbracelet/log"

	"deploykit/internal/commands"
	"deploykit/internal/logger"
	"deploykit/internal/matcher"
	"deploykit/internal/parser"
	"deploykit/pkg/deploytypes"
)

// Resolution describes how an argument vector was interpreted.
type Resolution struct {
	// Token is the command token as supplied, empty when argv was empty.
	Token string

	// Command is the bound command, nil when no command matched.
	Command deploytypes.Command

	// Candidates holds the canonical names of every command the token
	// matched, in registry order. More than one means the first one won
	// an ambiguous abbreviation.
	Candidates []string

	// Bound maps declared argument names to their final values.
	Bound map[string]string

	// Unknown holds parsed arguments that matched no declared name.
	Unknown []deploytypes.ParsedArgument

	// Dropped holds tokens that did not have a recognizable argument shape.
	Dropped []string
}

// Ambiguous reports whether more than one command matched the token.
func (r *Resolution) Ambiguous() bool {
	return len(r.Candidates) > 1
}

// Interpreter resolves argument vectors against a registry.
// It holds no mutable state and may be used from several goroutines.
type Interpreter struct {
	registry  *commands.Registry
	commands  matcher.CommandNameMatcher
	arguments matcher.ArgumentNameMatcher
	log       *log.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for ambiguity warnings and discard traces.
func WithLogger(l *log.Logger) Option {
	return func(i *Interpreter) {
		i.log = l
	}
}

// New creates an interpreter over registry.
func New(registry *commands.Registry, opts ...Option) *Interpreter {
	i := &Interpreter{registry: registry}
	for _, opt := range opts {
		opt(i)
	}
	if i.log == nil {
		i.log = logger.NewStyledLogger("Interpreter")
	}
	return i
}

// GetCommand returns the command denoted by commandLineArguments with its
// arguments bound. It returns nil and no error when the input is empty or no
// command matches; callers substitute their own default.
func (i *Interpreter) GetCommand(commandLineArguments []string) (deploytypes.Command, error) {
	res, err := i.Resolve(commandLineArguments)
	if err != nil {
		return nil, err
	}
	return res.Command, nil
}

// Resolve is GetCommand with diagnostics about candidates and discarded input.
func (i *Interpreter) Resolve(commandLineArguments []string) (*Resolution, error) {
	if i.registry == nil {
		return nil, deploytypes.ErrorInvalidArgument("registry", "interpreter has no registry")
	}

	res := &Resolution{}
	if len(commandLineArguments) == 0 {
		return res, nil
	}

	res.Token = commandLineArguments[0]
	if strings.TrimSpace(res.Token) == "" {
		return res, nil
	}

	selected, err := i.selectCommand(res)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		i.log.Debug("no command matched", "token", res.Token)
		return res, nil
	}

	res.Bound, err = i.bindArguments(selected.Describe(), commandLineArguments[1:], res)
	if err != nil {
		return nil, err
	}

	res.Command, err = selected.Bind(res.Bound)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (i *Interpreter) selectCommand(res *Resolution) (deploytypes.Command, error) {
	matched, err := i.commands.Matches(i.registry.Commands(), res.Token)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, nil
	}

	for _, cmd := range matched {
		res.Candidates = append(res.Candidates, cmd.Describe().CanonicalName)
	}
	if len(matched) > 1 {
		i.log.Warn("ambiguous command token, using first registered match",
			"token", res.Token, "command", res.Candidates[0], "candidates", strings.Join(res.Candidates, ","))
	}
	return matched[0], nil
}

func (i *Interpreter) bindArguments(desc deploytypes.CommandDescriptor, rest []string, res *Resolution) (map[string]string, error) {
	parsed := parser.ParseParametersFunc(rest, func(token string) {
		res.Dropped = append(res.Dropped, token)
		i.log.Debug("dropped malformed token", "command", desc.CanonicalName, "token", token)
	})

	bound := make(map[string]string, len(parsed))
	for _, arg := range parsed {
		name, ok, err := i.arguments.ResolveParsed(desc.ArgumentNames, arg.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			res.Unknown = append(res.Unknown, arg)
			i.log.Debug("discarded unknown argument", "command", desc.CanonicalName, "argument", arg.Name)
			continue
		}
		// later occurrences override earlier ones
		bound[name] = arg.Value
	}
	return bound, nil
}
