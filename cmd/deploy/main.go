// Package main provides the deploy CLI entry point.
// deploy resolves its first argument to a command by full name, unique
// abbreviation or alias, binds the remaining -name[:value] arguments onto
// that command and executes it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"deploykit/internal/commands"
	"deploykit/internal/commands/builtin"
	"deploykit/internal/config"
	"deploykit/internal/interpreter"
	"deploykit/internal/invocation"
	"deploykit/internal/logger"
	"deploykit/internal/output"
	"deploykit/internal/services"
	"deploykit/internal/version"
	"deploykit/pkg/deploytypes"
)

var exitCode int

// rootCmd hands argv to the interpreter untouched.
var rootCmd = &cobra.Command{
	Use:   "deploy <command> [-argument[:value]]...",
	Short: "deploy - package deployment tool",
	Long: `deploy installs, removes, builds and publishes packages.
Commands and their arguments may be abbreviated to any prefix of their name.
Run 'deploy help' for the list of commands.`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := config.Options{ConfigFile: os.Getenv("DEPLOY_CONFIG")}
		exitCode = run(cmd.Context(), args, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, opts config.Options, stdout io.Writer, stderr io.Writer) int {
	cfg, err := config.Load(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		fmt.Fprintf(stderr, "Error configuring logger: %v\n", err)
		return 1
	}

	styled := cfg.StyledOutput && services.TerminalSupportsStyle()
	mode, err := output.ParseFormat(cfg.OutputFormat, styled)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	printer := output.NewPrinter(output.WithWriter(stdout), output.WithErrorWriter(stderr), output.WithMode(mode))

	runLog := logger.Logger.With("run", invocation.NewRunID(cfg.TestMode))
	runLog.Debug("Starting deploy", "version", version.Version, "config", cfg.ConfigFileUsed, "dotenv", cfg.DotEnvLoaded)

	registry, err := newRegistry(cfg, styled, runLog)
	if err != nil {
		runLog.Error("Failed to build command catalog", "error", err)
		printer.Error(err)
		return 1
	}

	interp := interpreter.New(registry, interpreter.WithLogger(runLog.WithPrefix("Interpreter")))
	res, err := interp.Resolve(args)
	if err != nil {
		printer.Error(err)
		return 1
	}

	cmd := res.Command
	unknown := false
	if cmd == nil {
		unknown = res.Token != ""
		if unknown {
			printer.Notice(fmt.Sprintf("Unknown command: %s", res.Token))
		}
		if cmd, err = helpCommand(registry); err != nil {
			printer.Error(err)
			return 1
		}
	}

	name := cmd.Describe().CanonicalName
	logger.CommandExecution(name, res.Bound)
	result, err := cmd.Execute(ctx)
	if err != nil {
		runLog.Error("Command failed", "command", name, "error", err)
		printer.Error(err)
		return 1
	}
	printer.Result(name, result)

	// an unrecognized command is a failure even though help ran
	if unknown && result.ExitCode == 0 {
		return 1
	}
	return result.ExitCode
}

func newRegistry(cfg *config.Config, styled bool, l *log.Logger) (*commands.Registry, error) {
	backend := services.NewPlanBackend(l.WithPrefix("Plan"), cfg.LatestVersion)
	sources := services.NewSourceService(cfg.SourcesFile)
	l.Debug("Using package sources", "path", sources.Path(), "packages", cfg.PackagesDir)
	return builtin.NewCatalog(builtin.Dependencies{
		Packages:    backend,
		Cleaner:     backend,
		Packager:    backend,
		Publisher:   backend,
		Sources:     sources,
		Updater:     backend,
		Help:        services.NewHelpService(styled),
		PackagesDir: cfg.PackagesDir,
	})
}

func helpCommand(registry *commands.Registry) (deploytypes.Command, error) {
	help, ok := registry.Get("help")
	if !ok {
		return nil, fmt.Errorf("help command is not registered")
	}
	return help.Bind(map[string]string{})
}
