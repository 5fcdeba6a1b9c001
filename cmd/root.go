package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tidesh/tidesh/core/config"
	"github.com/tidesh/tidesh/core/repl"
)

var (
	cfgPath     string
	commandLine string
)

func loadConfig() *config.Config {
	configuration, err := config.Load(afero.NewOsFs(), cfgPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return config.Default()
	case err != nil:
		log.Printf("Couldn't load config: %v", err)
		return config.Default()
	}
	return configuration
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tidesh",
	Short: "A line-oriented command interpreter",
	Long: `Tidesh reads command lines, parses them into pipelines with
redirection and runs the stages as builtins or external programs.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if commandLine != "" {
			sh := repl.NewWithStreams(cfg, afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)
			os.Exit(sh.Eval(commandLine).Status)
		}

		sh, err := repl.New(cfg)
		if err != nil {
			return err
		}
		os.Exit(sh.Run())
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit")
}
