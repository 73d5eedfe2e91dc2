package rl

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/util"
)

// RewardAnalyzer accumulates the per-episode reward of one seat's side.
// Partnership rewards are mirrored, so one seat per side is enough.
type RewardAnalyzer struct {
	seat    bridge.Seat
	rewards []float64
}

var _ Analyzer = &RewardAnalyzer{}

func NewRewardAnalyzer(seat bridge.Seat) *RewardAnalyzer {
	return &RewardAnalyzer{
		seat:    seat,
		rewards: make([]float64, 0),
	}
}

func (r *RewardAnalyzer) Analyze(run, episode int, name string, trace *Trace) {
	reward := 0.0
	if trace.FinalRewards != nil {
		reward = trace.FinalRewards[r.seat]
	}
	reward += trace.TotalReward(r.seat)
	// The final reward is already in the acting seat's last transition when
	// that seat moved last, so avoid double counting it there.
	if last, ok := trace.Last(); ok && last.Seat == r.seat && trace.FinalRewards != nil {
		reward -= trace.FinalRewards[r.seat]
	}
	r.rewards = append(r.rewards, reward)
}

func (r *RewardAnalyzer) DataSet() DataSet {
	out := make([]float64, len(r.rewards))
	copy(out, r.rewards)
	return out
}

func (r *RewardAnalyzer) Reset() {
	r.rewards = make([]float64, 0)
}

// ContractMadeAnalyzer counts, cumulatively per episode, how often the
// declaring side made its contract. Passed-out hands count as not made.
type ContractMadeAnalyzer struct {
	made []int
}

var _ Analyzer = &ContractMadeAnalyzer{}

func NewContractMadeAnalyzer() *ContractMadeAnalyzer {
	return &ContractMadeAnalyzer{made: make([]int, 0)}
}

func (c *ContractMadeAnalyzer) Analyze(run, episode int, name string, trace *Trace) {
	prev := 0
	if len(c.made) > 0 {
		prev = c.made[len(c.made)-1]
	}
	made := 0
	if last, ok := trace.Last(); ok && !last.Info.PassedOut && last.Info.Declarer != nil {
		if trace.FinalRewards != nil && trace.FinalRewards[*last.Info.Declarer] > 0 {
			made = 1
		}
	}
	c.made = append(c.made, prev+made)
}

func (c *ContractMadeAnalyzer) DataSet() DataSet {
	out := make([]int, len(c.made))
	copy(out, c.made)
	return out
}

func (c *ContractMadeAnalyzer) Reset() {
	c.made = make([]int, 0)
}

// RewardPlotter renders the per-episode rewards of each experiment as a
// smoothed line plot.
func RewardPlotter(plotPath string, window int) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	if window < 1 {
		window = 1
	}
	return func(run int, names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Reward"
		for i := 0; i < len(names); i++ {
			rewards := ds[i].([]float64)
			smoothed := movingAverage(rewards, window)
			points := make(plotter.XYs, len(smoothed))
			for j, v := range smoothed {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(rewards) > 0 {
				fmt.Printf("Mean reward: %.3f for experiment: %s\n", mean(rewards), names[i])
			}
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_rewards.png"))
	}
}

// ContractMadePlotter renders the cumulative made-contract counts of each
// experiment as a line plot.
func ContractMadePlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Contracts made"
		for i := 0; i < len(names); i++ {
			made := ds[i].([]int)
			points := make(plotter.XYs, len(made))
			for j, v := range made {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(made) > 0 {
				fmt.Printf("Contracts made: %d for experiment: %s\n", made[len(made)-1], names[i])
			}
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_contracts_made.png"))
	}
}

// RewardDumpComparator writes each experiment's reward series to a JSON
// file for offline analysis.
func RewardDumpComparator(savePath string) Comparator {
	return func(run int, names []string, ds []DataSet) {
		out := make(map[string][]float64)
		for i, name := range names {
			out[name] = ds[i].([]float64)
		}
		filePath := path.Join(savePath, strconv.Itoa(run)+"_rewards.json")
		if err := util.WriteJSON(filePath, out); err != nil {
			fmt.Printf("failed to record rewards: %v\n", err)
		}
	}
}

func movingAverage(vals []float64, window int) []float64 {
	if window <= 1 || len(vals) <= window {
		out := make([]float64, len(vals))
		copy(out, vals)
		return out
	}
	out := make([]float64, 0, len(vals)-window+1)
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= window {
			sum -= vals[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
