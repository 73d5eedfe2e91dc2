package experiments

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/env"
	"github.com/bridgelab/bridge-rl/rl"
)

func Train(episodes, horizon int, saveFile string, runs int, seed int64, alpha, gamma, epsilon, temperature float64, ctx context.Context) error {
	c := rl.NewComparison(&rl.ComparisonConfig{
		Runs:         runs,
		Episodes:     episodes,
		Horizon:      horizon,
		RecordPath:   saveFile,
		RecordPolicy: true,
	})
	c.AddAnalysis("Rewards", rl.NewRewardAnalyzer(bridge.North), rl.RewardPlotter(saveFile, 100))
	c.AddAnalysis("ContractsMade", rl.NewContractMadeAnalyzer(), rl.ContractMadePlotter(saveFile))
	c.AddAnalysis("RewardDump", rl.NewRewardAnalyzer(bridge.North), rl.RewardDumpComparator(saveFile))

	newEnv := func() *env.Env {
		cfg := env.DefaultConfig()
		cfg.Seed = seed
		return env.NewEnv(cfg)
	}

	c.AddExperiment(rl.NewExperiment(
		"Random",
		rl.NewRandomPolicy(uint64(seed)),
		newEnv(),
	))
	c.AddExperiment(rl.NewExperiment(
		"SoftMax",
		rl.NewSoftMaxPolicy(alpha, gamma, temperature),
		newEnv(),
	))
	c.AddExperiment(rl.NewExperiment(
		"QLearning",
		rl.NewQLearningPolicy(alpha, gamma, epsilon, uint64(seed)),
		newEnv(),
	))

	return c.Run(ctx)
}

func TrainCommand() *cobra.Command {
	var alpha float64
	var gamma float64
	var epsilon float64
	var temperature float64

	cmd := &cobra.Command{
		Use: "train",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Train(episodes, horizon, saveFile, runs, seed, alpha, gamma, epsilon, temperature, context.Background())
		},
	}
	cmd.PersistentFlags().Float64Var(&alpha, "alpha", 0.3, "Learning rate")
	cmd.PersistentFlags().Float64Var(&gamma, "gamma", 0.7, "Discount factor")
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", 0.1, "Exploration rate for Q-learning")
	cmd.PersistentFlags().Float64Var(&temperature, "temperature", 1, "Boltzmann temperature for SoftMax")
	return cmd
}
