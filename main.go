package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnjim0816/mpe/agent"
	"github.com/johnjim0816/mpe/environment/envconfig"
	"github.com/johnjim0816/mpe/environment/particle"
	"github.com/johnjim0816/mpe/experiment"
	"github.com/johnjim0816/mpe/experiment/trackers"
	"github.com/johnjim0816/mpe/utils/progressbar"
)

// defaultMaxFrames is the episode cutoff used by the run command
const defaultMaxFrames = 1000

func main() {
	rootCmd := &cobra.Command{
		Use:   "mpe",
		Short: "mpe runs agents in turn-based particle worlds",
	}
	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runFlags holds the command line flags of the run command which are
// not part of an experiment Config
type runFlags struct {
	seed     uint64
	render   bool
	progress bool
	verbose  bool
	physics  string
	agent    string
}

func newRunCmd() *cobra.Command {
	conf := experiment.NewConfig(1000)
	conf.EnvConf.Touch.MaxFrames = defaultMaxFrames
	var flags runFlags

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run an agent in the touch world",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf.EnvConf.Physics = envconfig.PhysicsName(flags.physics)
			conf.AgentConf.Type = agent.Type(flags.agent)
			return runExperiment(conf, flags)
		},
	}

	f := runCmd.Flags()
	touch := &conf.EnvConf.Touch
	f.IntVar(&touch.NumTargets, "targets", touch.NumTargets,
		"number of targets")
	f.IntVar(&touch.MaxFrames, "max-frames", touch.MaxFrames,
		"maximum number of steps per episode")
	f.Var(&touch.RewardScales, "reward-scales", "per-target reward "+
		"scales: a number, a comma separated list, linear, or exp-<base>")
	f.Var(&touch.SizeScales, "size-scales", "per-target size scales: a "+
		"number, a comma separated list, linear, or exp-<base>")
	f.Float64Var(&touch.TimePenalty, "time-penalty", touch.TimePenalty,
		"penalty paid on every step no target is touched")
	f.BoolVar(&touch.GameEndAfterTouch, "game-end-after-touch",
		touch.GameEndAfterTouch, "freeze the agent on its first touch")
	f.BoolVar(&touch.EasyMode, "easy-mode", touch.EasyMode,
		"place four targets on a fixed cross")
	f.BoolVar(&conf.EnvConf.ContinuousActions, "continuous",
		conf.EnvConf.ContinuousActions, "use continuous actions")
	f.UintVar(&conf.MaxSteps, "steps", conf.MaxSteps,
		"total number of steps to run")
	f.Float64SliceVar(&conf.AgentConf.Action, "action", []float64{0},
		"action taken by the Constant agent")

	f.StringVar(&flags.physics, "physics", string(envconfig.Euler),
		"physics backend, Euler or Box2D")
	f.StringVar(&flags.agent, "agent", string(agent.ConstantAgent),
		"agent to run, Constant or Random")
	f.Uint64Var(&flags.seed, "seed", 0, "random seed")
	f.BoolVar(&flags.render, "render", false, "render every step as text")
	f.BoolVar(&flags.progress, "progress", false, "show a progress bar")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug records")

	return runCmd
}

func runExperiment(conf experiment.Config, flags runFlags) error {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level}))

	if data, err := json.Marshal(conf); err == nil {
		logger.Debug("config", "experiment", string(data))
	}

	var opts []particle.Option
	if flags.render {
		opts = append(opts, particle.WithRenderer(
			particle.NewTextRenderer(os.Stdout)))
	}

	returns := trackers.NewReturn()
	lengths := trackers.NewEpisodeLength()
	exp, err := conf.CreateExp(flags.seed, logger,
		[]trackers.Tracker{returns, lengths}, opts...)
	if err != nil {
		return fmt.Errorf("could not create experiment: %v", err)
	}
	defer exp.Close()

	if flags.render {
		exp.SetRenderMode(particle.TextMode)
	}

	var bar *progressbar.ProgressBar
	if flags.progress {
		bar = progressbar.New(os.Stderr, 40, int(conf.MaxSteps))
		exp.SetProgressBar(bar)
	}

	err = exp.Run()
	if bar != nil {
		bar.Close()
	}
	if err != nil {
		return fmt.Errorf("experiment failed: %v", err)
	}

	logger.Info("done",
		"episodes", exp.Episodes(),
		"returns", returns.Data(),
		"lengths", lengths.Data(),
	)
	return nil
}
