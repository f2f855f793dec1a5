// Package cmd provides the root command and CLI setup for cloneforge.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cloneforge.dev/pkg/cloneforge/internal/adapter"
	"cloneforge.dev/pkg/cloneforge/internal/controller"
	"cloneforge.dev/pkg/cloneforge/internal/domain"
	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

var corpusFS adapter.CorpusFS
var langResolver adapter.LanguageResolver
var pairStore adapter.PairStore
var engine domain.Generator
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that export
// datasets.
var outputDirFlag string

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	langResolver = adapter.NewEnryResolver()
	pairStore = adapter.NewPairStore()
	engine = domain.NewEngine()

	cachingFS, err := adapter.NewCachingCorpusFS(adapter.NewLocalCorpusFS(), viper.GetInt(cacheSizeKey))
	cobra.CheckErr(err)

	corpusFS = cachingFS
	workflow = domain.NewWorkflow(corpusFS, langResolver, engine)
}

const rootLongDescription = `Cloneforge produces labeled clone pairs for training and evaluating
code-clone detectors. It generates Type-3 clones by applying seeded,
deterministic statement-level transformations to a snippet, and mines
Type-4 pairs from corpora holding multiple independent solutions to the
same problem.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cloneforge",
		Short: "Clone-pair dataset generation tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for exported datasets",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parseLanguage maps a --lang value to the language enum.
func parseLanguage(value string) (m.Language, error) {
	lang := m.Language(value)
	if !lang.IsSupported() {
		return "", fmt.Errorf("unsupported language %q (supported: %v)", value, m.Languages())
	}

	return lang, nil
}
