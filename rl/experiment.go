package rl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/bridgelab/bridge-rl/util"
)

// Experiment encapsulates a named policy and the environment it acts in.
type Experiment struct {
	Name        string
	policy      Policy
	environment Environment
}

func NewExperiment(name string, policy Policy, environment Environment) *Experiment {
	return &Experiment{
		Name:        name,
		policy:      policy,
		environment: environment,
	}
}

type experimentRunConfig struct {
	CurrentRun int
	Episodes   int
	Horizon    int
	Analyzers  []Analyzer
	Context    context.Context

	RecordTraces bool
	RecordPolicy bool
	SavePath     string
}

// Recordable is implemented by policies that can dump learned state.
type Recordable interface {
	Record(path string) error
}

func (e *Experiment) recordTrace(rConfig *experimentRunConfig, trace *Trace) {
	tracesFile := path.Join(rConfig.SavePath, "traces", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)+".jsonl")
	bs, err := json.Marshal(trace.Steps())
	if err != nil {
		panic(err)
	}
	util.AppendToFile(tracesFile, string(bs))
}

// Run plays the configured number of episodes, feeding every trace to the
// analyzers as it completes.
func (e *Experiment) Run(rConfig *experimentRunConfig) error {
	agent := NewAgent(&AgentConfig{
		Episodes:    rConfig.Episodes,
		Horizon:     rConfig.Horizon,
		Policy:      e.policy,
		Environment: e.environment,
	})

	for episode := 0; episode < rConfig.Episodes; episode++ {
		select {
		case <-rConfig.Context.Done():
			return rConfig.Context.Err()
		default:
		}

		trace, err := agent.RunEpisode(episode)
		if err != nil {
			return fmt.Errorf("experiment %s episode %d: %w", e.Name, episode, err)
		}
		if rConfig.RecordTraces {
			e.recordTrace(rConfig, trace)
		}
		for _, a := range rConfig.Analyzers {
			a.Analyze(rConfig.CurrentRun, episode, e.Name, trace)
		}
		if (episode+1)%100 == 0 || episode == rConfig.Episodes-1 {
			fmt.Printf("\rExp: %s, Episodes: %d/%d", e.Name, episode+1, rConfig.Episodes)
		}
	}
	fmt.Println("")

	if rConfig.RecordPolicy {
		if r, ok := e.policy.(Recordable); ok {
			r.Record(path.Join(rConfig.SavePath, "policies", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)+".json"))
		}
	}
	return nil
}

// Reset clears the policy's learned state between runs.
func (e *Experiment) Reset() {
	e.policy.Reset()
}

// DataSet is the generic result of processing traces.
type DataSet interface{}

// Analyzer compresses episode traces into a DataSet.
type Analyzer interface {
	// Run, episode, experiment name, trace
	Analyze(int, int, string, *Trace)
	DataSet() DataSet
	Reset()
}

// Comparator differentiates between datasets with associated names.
// run, experiment names, datasets
type Comparator func(int, []string, []DataSet)

func NoopComparator() Comparator {
	return func(int, []string, []DataSet) {}
}

// ComparisonConfig contains the configuration for the comparison.
type ComparisonConfig struct {
	Runs     int
	Episodes int
	Horizon  int

	RecordPath   string
	RecordTraces bool
	RecordPolicy bool
}

// Comparison runs several experiments over the same episode budget and
// hands their analyzed datasets to comparators.
type Comparison struct {
	Experiments []*Experiment
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	cConfig     *ComparisonConfig
}

func NewComparison(config *ComparisonConfig) *Comparison {
	os.MkdirAll(config.RecordPath, 0755)
	if config.RecordTraces {
		os.MkdirAll(path.Join(config.RecordPath, "traces"), 0755)
	}
	if config.RecordPolicy {
		os.MkdirAll(path.Join(config.RecordPath, "policies"), 0755)
	}
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		cConfig:     config,
	}
}

// AddAnalysis adds an analyzer and the comparator for its dataset.
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// Run executes every experiment for every run and invokes the comparators
// on the collected datasets.
func (c *Comparison) Run(ctx context.Context) error {
	c.recordConfig()

	for run := 0; run < c.cConfig.Runs; run++ {
		fmt.Printf("Run %d\n", run+1)
		datasets := make(map[string][]DataSet)
		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}

		names := make([]string, len(c.Experiments))
		for i, e := range c.Experiments {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := e.Run(c.prepareRunConfig(ctx, run)); err != nil {
				return err
			}
			for name, a := range c.analyzers {
				datasets[name][i] = a.DataSet()
				a.Reset()
			}
			names[i] = e.Name
			e.Reset()
		}
		for name, comp := range c.comparators {
			comp(run, names, datasets[name])
		}
	}
	return nil
}

func (c *Comparison) prepareRunConfig(ctx context.Context, run int) *experimentRunConfig {
	rCfg := &experimentRunConfig{
		CurrentRun:   run,
		Episodes:     c.cConfig.Episodes,
		Horizon:      c.cConfig.Horizon,
		Analyzers:    make([]Analyzer, 0),
		Context:      ctx,
		RecordTraces: c.cConfig.RecordTraces,
		RecordPolicy: c.cConfig.RecordPolicy,
		SavePath:     c.cConfig.RecordPath,
	}
	for _, a := range c.analyzers {
		rCfg.Analyzers = append(rCfg.Analyzers, a)
	}
	return rCfg
}

func (c *Comparison) recordConfig() {
	out := map[string]interface{}{
		"runs":          c.cConfig.Runs,
		"episodes":      c.cConfig.Episodes,
		"horizon":       c.cConfig.Horizon,
		"record_traces": c.cConfig.RecordTraces,
		"record_policy": c.cConfig.RecordPolicy,
	}
	experiments := make([]string, 0)
	for _, e := range c.Experiments {
		experiments = append(experiments, e.Name)
	}
	out["experiments"] = experiments

	analyzers := make([]string, 0)
	for name := range c.analyzers {
		analyzers = append(analyzers, name)
	}
	out["analyzers"] = analyzers

	if err := util.WriteJSON(path.Join(c.cConfig.RecordPath, "comparison_config.json"), out); err != nil {
		panic(err)
	}
}
