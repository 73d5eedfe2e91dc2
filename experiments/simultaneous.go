package experiments

import (
	"fmt"
	"path"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/env"
	"github.com/bridgelab/bridge-rl/rl"
	"github.com/bridgelab/bridge-rl/util"
)

// SimultaneousBaseline exercises the simultaneous step contract: one agent
// fills the sentinel for passive seats and plays random legal actions for
// the active one.
func SimultaneousBaseline(episodes, horizon int, saveFile string, seed int64) error {
	cfg := env.DefaultConfig()
	cfg.Seed = seed

	agent := &rl.SimultaneousAgent{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      rl.NewRandomPolicy(uint64(seed)),
		Environment: env.NewSimultaneousEnv(cfg),
		Sentinel:    env.NoAction,
	}

	rewards := make([]string, 0, episodes)
	for episode := 0; episode < episodes; episode++ {
		trace, err := agent.RunEpisode(episode)
		if err != nil {
			return fmt.Errorf("episode %d: %w", episode, err)
		}
		reward := 0.0
		if trace.FinalRewards != nil {
			reward = trace.FinalRewards[bridge.North]
		}
		rewards = append(rewards, strconv.FormatFloat(reward, 'f', -1, 64))
		if (episode+1)%100 == 0 || episode == episodes-1 {
			fmt.Printf("\rEpisodes: %d/%d", episode+1, episodes)
		}
	}
	fmt.Println("")
	return util.WriteToFile(path.Join(saveFile, "simultaneous_rewards.txt"), rewards...)
}

func SimultaneousCommand() *cobra.Command {
	return &cobra.Command{
		Use: "simultaneous",
		RunE: func(cmd *cobra.Command, args []string) error {
			return SimultaneousBaseline(episodes, horizon, saveFile, seed)
		},
	}
}
