package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ctxgen/pkg/contextfile"
	"ctxgen/pkg/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	directory        string
	output           string
	excludePatterns  []string
	includePatterns  []string
	respectGitignore bool
	countTokens      bool
	copyToClipboard  bool
	verbose          bool
	cfgFile          string

	logger *zap.Logger
)

// RootCmd generates the context file when invoked without a subcommand.
var RootCmd = &cobra.Command{
	Use:   "ctxgen",
	Short: "ctxgen aggregates a codebase into a single context file",
	Long: `ctxgen walks a directory tree and concatenates the relevant source and
documentation files into one annotated context file, sized and filtered for
direct consumption by a large-language-model context window.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			if err := logging.Setup(true, "ctxgen"); err == nil {
				logger = logging.Logger
			}
		}

		arguments := &contextfile.Arguments{
			Directory:        directory,
			Output:           output,
			ExcludePatterns:  excludePatterns,
			IncludePatterns:  includePatterns,
			RespectGitignore: respectGitignore,
			CountTokens:      countTokens,
			CopyToClipboard:  copyToClipboard,
		}
		return contextfile.Run(arguments, logger)
	},
}

// Execute runs the root command with the given logger.
func Execute(l *zap.Logger) error {
	logger = l
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.Flags().StringVarP(&directory, "directory", "d", ".",
		"Root directory of the codebase")
	RootCmd.Flags().StringVarP(&output, "output", "o", contextfile.DefaultOutputFile,
		"Output file path")
	RootCmd.Flags().StringArrayVarP(&excludePatterns, "exclude", "e", nil,
		"Regex pattern excluding files (repeatable; replaces the built-in defaults)")
	RootCmd.Flags().StringArrayVarP(&includePatterns, "include", "i", nil,
		"Regex pattern restricting candidates (repeatable)")
	RootCmd.Flags().BoolVar(&respectGitignore, "respect-gitignore", false,
		"Also exclude files matched by a root .gitignore")
	RootCmd.Flags().BoolVar(&countTokens, "tokens", false,
		"Estimate tokens of the generated context file")
	RootCmd.Flags().BoolVar(&copyToClipboard, "clipboard", false,
		"Copy the generated context file to the clipboard")
	RootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	RootCmd.Flags().StringVar(&cfgFile, "config", "",
		"Config file (default: $HOME/.config/ctxgen/config.toml)")

	viper.BindPFlag("directory", RootCmd.Flags().Lookup("directory"))
	viper.BindPFlag("output", RootCmd.Flags().Lookup("output"))
	viper.BindPFlag("exclude", RootCmd.Flags().Lookup("exclude"))
	viper.BindPFlag("include", RootCmd.Flags().Lookup("include"))
	viper.BindPFlag("respect_gitignore", RootCmd.Flags().Lookup("respect-gitignore"))
	viper.BindPFlag("tokens", RootCmd.Flags().Lookup("tokens"))
	viper.BindPFlag("clipboard", RootCmd.Flags().Lookup("clipboard"))
}

// initConfig loads the optional config file and CTXGEN_* environment
// variables. Precedence is flag > environment > config file > default.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ctxgen"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("CTXGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
	}

	// Flags win when set explicitly; otherwise take the viper-resolved value.
	if !RootCmd.Flags().Changed("directory") {
		if v := viper.GetString("directory"); v != "" {
			directory = v
		}
	}
	if !RootCmd.Flags().Changed("output") {
		if v := viper.GetString("output"); v != "" {
			output = v
		}
	}
	if !RootCmd.Flags().Changed("exclude") {
		if v := viper.GetStringSlice("exclude"); len(v) > 0 {
			excludePatterns = v
		}
	}
	if !RootCmd.Flags().Changed("include") {
		if v := viper.GetStringSlice("include"); len(v) > 0 {
			includePatterns = v
		}
	}
	if !RootCmd.Flags().Changed("respect-gitignore") {
		respectGitignore = viper.GetBool("respect_gitignore")
	}
	if !RootCmd.Flags().Changed("tokens") {
		countTokens = viper.GetBool("tokens")
	}
	if !RootCmd.Flags().Changed("clipboard") {
		copyToClipboard = viper.GetBool("clipboard")
	}
}
