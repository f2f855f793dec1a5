package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cloneforge.dev/pkg/cloneforge/internal/adapter"
	"cloneforge.dev/pkg/cloneforge/internal/domain"
	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

var mineLangFlag string
var mineMinClusterFlag int
var mineMaxPairsFlag int
var mineParallelFlag int
var mineStatsFlag bool

// mineCmd represents the mine command.
var mineCmd = newMineCmd()

func newMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine DIR",
		Short: "Mine Type-4 clone pairs from a solution corpus",
		Long: `Scan a directory of solution files, group them by extracted problem id,
and emit every pair of independent solutions to the same problem as a
Type-4 clone pair. Pairs are exported as JSON lines together with a yaml
run manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			lang, err := parseLanguage(mineLangFlag)
			if err != nil {
				return err
			}

			mineArgs := domain.MineArgs{
				Root:               m.Path(args[0]),
				Lang:               lang,
				MinClusterSize:     viper.GetInt(minClusterSizeKey),
				MaxPairsPerCluster: viper.GetInt(maxPairsPerClusterKey),
				Parallel:           viper.GetInt(runParallelConfigKey),
			}

			if err := ui.Start(ctx, "Mining clone pairs from "+args[0]); err != nil {
				return err
			}

			pairs, stats, err := workflow.MineWithStats(ctx, mineArgs)

			ui.Close(ctx)

			if err != nil {
				return err
			}

			outDir := m.Path(viper.GetString(outputFlagName))
			if err := pairStore.SavePairs(outDir, pairs); err != nil {
				return err
			}

			manifest := adapter.RunManifest{
				Label:     m.LabelType4,
				Lang:      lang,
				Root:      mineArgs.Root,
				CreatedAt: time.Now().UTC(),
				Options: adapter.ManifestOpts{
					MinClusterSize:     mineArgs.MinClusterSize,
					MaxPairsPerCluster: mineArgs.MaxPairsPerCluster,
				},
				Stats: stats,
			}

			if err := pairStore.SaveManifest(outDir, manifest); err != nil {
				return err
			}

			if err := ui.DisplayPairs(ctx, pairs, viper.GetInt(pairPreviewKey)); err != nil {
				return err
			}

			if mineStatsFlag {
				return ui.DisplayStats(ctx, stats)
			}

			return nil
		},
	}

	configureMineFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func configureMineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&mineLangFlag, langFlagName, "l", string(m.LangPython), "language of the corpus")
	cmd.Flags().IntVar(&mineMinClusterFlag, "min-cluster-size", viper.GetInt(minClusterSizeKey), "minimum solutions per problem before pairs are emitted")
	bindFlagToConfig(cmd.Flags().Lookup("min-cluster-size"), minClusterSizeKey)
	cmd.Flags().IntVar(&mineMaxPairsFlag, "max-pairs-per-cluster", viper.GetInt(maxPairsPerClusterKey), "cap on pairs per cluster, 0 for uncapped")
	bindFlagToConfig(cmd.Flags().Lookup("max-pairs-per-cluster"), maxPairsPerClusterKey)
	cmd.Flags().IntVarP(&mineParallelFlag, parallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel scan workers")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), runParallelConfigKey)
	cmd.Flags().BoolVar(&mineStatsFlag, "stats", false, "print aggregate mining statistics")
}
