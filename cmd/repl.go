package cmd

import (
	"log"

	"github.com/luthersystems/lispy/repl"
	"github.com/spf13/cobra"
)

var replPrompt string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run an interactive read-eval-print loop",
	Long: `Run an interactive read-eval-print loop.  Input spanning multiple lines
is evaluated once the expression is complete.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("prompt") {
			config.Prompt = replPrompt
		}
		env, err := newEnv(config)
		if err != nil {
			log.Fatal(err)
		}
		opts := []repl.Option{repl.WithPrompt(config.Prompt)}
		if config.HistoryFile != "" {
			opts = append(opts, repl.WithHistoryFile(config.HistoryFile))
		}
		err = repl.RunRepl(env, opts...)
		if err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", repl.DefaultPrompt,
		"Prompt displayed before each expression")
}
