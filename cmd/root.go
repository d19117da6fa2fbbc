package cmd

import (
	"log"
	"os"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/lisplib"
	"github.com/luthersystems/lispy/parser"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	maxDepth int
	config   = DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lispy",
	Short: "A small lisp interpreter",
	Long: `Lispy reads, evaluates and prints lisp expressions.  Programs can be
run from files or the command line, or entered interactively.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			config = cfg
		}
		if cmd.Flags().Changed("max-depth") {
			config.MaxDepth = maxDepth
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen once
// to the rootCmd.
func Execute() {
	log.SetFlags(0)
	log.SetPrefix("lispy: ")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEnv constructs the global environment shared by every expression a
// command evaluates.
func newEnv(cfg *Config) (*lisp.Env, error) {
	env := lisp.NewEnv(nil)
	err := lisp.InitializeUserEnv(env,
		lisp.WithMaximumDepth(cfg.MaxDepth),
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(os.Stdout),
		lisp.WithStderr(os.Stderr),
		lisp.WithLoader(lisplib.LoadLibrary),
	)
	if err != nil {
		return nil, err
	}
	return env, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", lisp.DefaultMaxDepth,
		"Maximum evaluation depth (zero for no limit)")
}
