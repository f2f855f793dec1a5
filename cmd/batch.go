package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cloneforge.dev/pkg/cloneforge/internal/domain"
	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

var batchLangFlag string
var batchSeedFlag int64
var batchParallelFlag int

// batchCmd represents the batch command.
var batchCmd = newBatchCmd()

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Generate Type-3 clones for every file in a corpus",
		Long: `Scan a corpus directory and generate a Type-3 clone for each source file,
exporting the results as JSON lines. Per-file seeds derive from the run
seed and the file path, so repeated runs replay byte-identically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			lang, err := parseLanguage(batchLangFlag)
			if err != nil {
				return err
			}

			batchArgs := domain.BatchArgs{
				Root:     m.Path(args[0]),
				Lang:     lang,
				Parallel: viper.GetInt(runParallelConfigKey),
				Gen: domain.GenerateOptions{
					MaxTransformations: viper.GetInt(maxTransformationsKey),
					MinCodeLength:      viper.GetInt(minCodeLengthKey),
					RetryBudget:        viper.GetInt(retryBudgetKey),
					MinRetention:       viper.GetFloat64(minRetentionKey),
				},
			}

			if cmd.Flags().Changed(seedFlagName) {
				seed := batchSeedFlag
				batchArgs.Gen.Seed = &seed
			}

			if err := ui.Start(ctx, "Generating clones for "+args[0]); err != nil {
				return err
			}

			outcome, err := workflow.Batch(ctx, batchArgs)

			ui.Close(ctx)

			if err != nil {
				return err
			}

			defer func() { _ = outcome.Records.Close() }()

			outDir := m.Path(viper.GetString(outputFlagName))

			err = pairStore.SaveClones(outDir, func(emit func(m.Type3Record) error) error {
				return outcome.Records.Range(func(_ uint64, rec m.Type3Record) error {
					return emit(rec)
				})
			})
			if err != nil {
				return err
			}

			return ui.DisplayBatchSummary(ctx, outcome.Generated, outcome.Fallbacks)
		},
	}

	configureBatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func configureBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&batchLangFlag, langFlagName, "l", string(m.LangPython), "language of the corpus")
	cmd.Flags().Int64Var(&batchSeedFlag, seedFlagName, 0, "base seed folded into every per-file seed")
	cmd.Flags().IntVarP(&batchParallelFlag, parallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel generation workers")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), runParallelConfigKey)
}
