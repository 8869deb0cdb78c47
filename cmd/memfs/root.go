package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/brettbedarf/memfs/requests"
	"github.com/brettbedarf/memfs/shell"
)

type options struct {
	configPath string
	envFile    string
	nodes      string
	script     string
	verbose    int
	prompt     string
	noColor    bool
}

// newRootCmd builds the memfs command. lookup resolves MEMFS_* environment
// overrides, normally os.LookupEnv.
func newRootCmd(lookup func(string) (string, bool)) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "memfs",
		Short: "In-memory filesystem shell",
		Long: `memfs runs a line-oriented shell over an in-memory directory tree.

Commands are read from stdin, or from --script, one per line. Type "help"
inside the shell for the command list. The tree can be preloaded from a JSON
or YAML node definition file with --nodes; nothing is persisted on exit.

Configuration precedence, lowest first: defaults, --config file, --env-file,
MEMFS_* environment variables, command line flags.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, lookup)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML or JSON config file")
	f.StringVar(&opts.envFile, "env-file", "", "Path to a dotenv file with MEMFS_* variables")
	f.StringVarP(&opts.nodes, "nodes", "n", "", "Path to a JSON or YAML node definition file to seed the tree")
	f.StringVarP(&opts.script, "script", "s", "", "Read commands from a file instead of stdin")
	f.IntVarP(&opts.verbose, "verbose", "v", config.WarnVerbose, "Log verbosity between 1 (error) and 5 (trace)")
	f.StringVar(&opts.prompt, "prompt", config.PromptAuto, "Prompt mode: auto, always or never")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable styled output")
	return cmd
}

func run(cmd *cobra.Command, opts *options, lookup func(string) (string, bool)) error {
	cfg, err := loadConfig(cmd, opts, lookup)
	if err != nil {
		return err
	}

	util.InitializeLogger(cfg.LogLvl, cmd.ErrOrStderr())
	logger := util.GetLogger("main")
	logger.Debug().Interface("config", cfg).Msg("Configuration loaded")

	fsys := filesystem.NewFS()
	if cfg.SeedFile != "" {
		seed, err := requests.LoadSeedFile(cfg.SeedFile, cfg.DefaultOrigin)
		if err != nil {
			logger.Error().Err(err).Str("nodes", cfg.SeedFile).Msg("Failed to load node definitions")
			return err
		}
		dirs, files := seedTree(fsys, seed)
		logger.Info().Int("directories", dirs).Int("files", files).Msg("Added new nodes to filesystem")
	} else {
		logger.Debug().Msg("No node definition file provided")
	}

	var in io.Reader = cmd.InOrStdin()
	if opts.script != "" {
		script, err := os.Open(opts.script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer script.Close()
		in = script
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := shell.New(fsys, cfg, cmd.OutOrStdout())
	if err := sh.Run(ctx, in); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Shell stopped")
		return err
	}
	return nil
}

// loadConfig layers defaults, the config file, environment and flags
func loadConfig(cmd *cobra.Command, opts *options, lookup func(string) (string, bool)) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if opts.configPath != "" {
		fileCfg, err := config.NewConfigFromFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if opts.envFile != "" {
		vars, err := config.ReadEnvFile(opts.envFile)
		if err != nil {
			return nil, err
		}
		lookup = config.EnvLookup(lookup, vars)
	}
	envOverride, err := config.LoadEnvOverride(lookup)
	if err != nil {
		return nil, err
	}
	cfg.Merge(envOverride)
	cfg.Merge(flagOverride(cmd, opts))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagOverride holds only the flags set on the command line
func flagOverride(cmd *cobra.Command, opts *options) *config.ConfigOverride {
	override := &config.ConfigOverride{}
	f := cmd.Flags()
	if f.Changed("verbose") {
		override.LogLvl = util.Pointer(opts.verbose)
	}
	if f.Changed("nodes") {
		override.SeedFile = util.Pointer(opts.nodes)
	}
	if f.Changed("prompt") {
		override.PromptMode = util.Pointer(opts.prompt)
	}
	if f.Changed("no-color") {
		override.Color = util.Pointer(!opts.noColor)
	}
	return override
}
