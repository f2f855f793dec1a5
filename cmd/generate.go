package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cloneforge.dev/pkg/cloneforge/internal/domain"
	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

var generateLangFlag string
var generateSeedFlag int64
var generateMaxFlag int
var generateMinLenFlag int
var generateSaveFlag bool

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Generate a Type-3 clone of a source file",
		Long: `Apply seeded, deterministic statement-level transformations to the given
source file and print the resulting clone with its transformation log.
The original file is never modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			lang, err := parseLanguage(generateLangFlag)
			if err != nil {
				return err
			}

			content, err := corpusFS.ReadFile(m.Path(args[0]))
			if err != nil {
				return err
			}

			opts := domain.GenerateOptions{
				MaxTransformations: viper.GetInt(maxTransformationsKey),
				MinCodeLength:      viper.GetInt(minCodeLengthKey),
				RetryBudget:        viper.GetInt(retryBudgetKey),
				MinRetention:       viper.GetFloat64(minRetentionKey),
			}

			if cmd.Flags().Changed(seedFlagName) {
				seed := generateSeedFlag
				opts.Seed = &seed
			}

			result := engine.Generate(string(content), lang, opts)

			if err := ui.DisplayClone(ctx, result); err != nil {
				return err
			}

			if !generateSaveFlag {
				return nil
			}

			record := m.Type3Record{
				Path:               m.Path(args[0]),
				Clone:              result.Clone,
				Success:            result.Success,
				NumTransformations: len(result.Applied),
				Label:              m.LabelType3,
			}

			return pairStore.SaveClones(m.Path(viper.GetString(outputFlagName)), func(emit func(m.Type3Record) error) error {
				return emit(record)
			})
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

const seedFlagName = "seed"

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generateLangFlag, langFlagName, "l", string(m.LangPython), "source language of the input")
	cmd.Flags().Int64Var(&generateSeedFlag, seedFlagName, 0, "seed for the deterministic random generator (default: derived from the input)")
	cmd.Flags().IntVar(&generateMaxFlag, "max-transformations", viper.GetInt(maxTransformationsKey), "maximum number of transformations to apply")
	bindFlagToConfig(cmd.Flags().Lookup("max-transformations"), maxTransformationsKey)
	cmd.Flags().IntVar(&generateMinLenFlag, "min-code-length", viper.GetInt(minCodeLengthKey), "minimum number of non-blank input lines")
	bindFlagToConfig(cmd.Flags().Lookup("min-code-length"), minCodeLengthKey)
	cmd.Flags().BoolVar(&generateSaveFlag, "save", false, "also export the clone as a dataset record")
}
