package experiments

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/env"
	"github.com/bridgelab/bridge-rl/rl"
)

func RandomBaseline(episodes, horizon int, saveFile string, runs int, seed int64, scoring bridge.ScoringMode, ctx context.Context) error {
	c := rl.NewComparison(&rl.ComparisonConfig{
		Runs:       runs,
		Episodes:   episodes,
		Horizon:    horizon,
		RecordPath: saveFile,
	})
	c.AddAnalysis("Rewards", rl.NewRewardAnalyzer(bridge.North), rl.RewardPlotter(saveFile, 100))
	c.AddAnalysis("ContractsMade", rl.NewContractMadeAnalyzer(), rl.ContractMadePlotter(saveFile))

	cfg := env.DefaultConfig()
	cfg.Seed = seed
	cfg.Scoring = scoring
	c.AddExperiment(rl.NewExperiment(
		"Random",
		rl.NewRandomPolicy(uint64(seed)),
		env.NewEnv(cfg),
	))

	return c.Run(ctx)
}

func RandomCommand() *cobra.Command {
	var duplicate bool

	cmd := &cobra.Command{
		Use: "random",
		RunE: func(cmd *cobra.Command, args []string) error {
			scoring := bridge.ScoreTricks
			if duplicate {
				scoring = bridge.ScoreDuplicate
			}
			return RandomBaseline(episodes, horizon, saveFile, runs, seed, scoring, context.Background())
		},
	}
	cmd.PersistentFlags().BoolVar(&duplicate, "duplicate", false, "Score with duplicate rules instead of trick differential")
	return cmd
}
