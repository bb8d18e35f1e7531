package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/isuruf/jumplab/internal/config"
	"github.com/isuruf/jumplab/internal/derive"
	"github.com/isuruf/jumplab/internal/store"
	"github.com/isuruf/jumplab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	noSave     bool
	// Sweep range
	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jumplab",
		Short: "symbolic layer-potential jump-condition lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".jumplab", "data directory")

	deriveCmd := &cobra.Command{
		Use:   "derive [problem]",
		Short: "derive interface conditions for a problem",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDerive,
	}
	deriveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	deriveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	deriveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list available problems",
		RunE:  listProblems,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	traceCmd := &cobra.Command{
		Use:   "trace [run_id]",
		Short: "print the saved step trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  traceRun,
	}

	exportLatexCmd := &cobra.Command{
		Use:   "export-latex [run_id]",
		Short: "export run conditions as LaTeX",
		Args:  cobra.ExactArgs(1),
		RunE:  exportLatex,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [problem]",
		Short: "plot the extracted coefficient over a parameter range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", config.DefaultSweepFrom, "range start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", config.DefaultSweepTo, "range end")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", config.DefaultSweepPoints, "sample count")

	stepsCmd := &cobra.Command{
		Use:   "steps [problem]",
		Short: "walk a derivation interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSteps,
	}
	stepsCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	stepsCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(deriveCmd, problemsCmd, listCmd, showCmd, traceCmd, exportLatexCmd, sweepCmd, stepsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges the preset, config file and positional problem name,
// with the positional argument winning.
func resolveConfig(args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		problem := cfg.Problem
		if len(args) > 0 {
			problem = args[0]
		}
		p := config.GetPreset(problem, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(problem))
		}
		copied := *p
		cfg = &copied
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Problem = args[0]
	}
	return cfg, nil
}

func runProblem(cfg *config.Config) (*derive.Result, error) {
	registry := derive.NewRegistry()
	problem, err := registry.Get(cfg.Problem)
	if err != nil {
		return nil, err
	}
	return derive.Run(context.Background(), problem)
}

func runDerive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	fmt.Printf("deriving %s...\n\n", cfg.Problem)
	result, err := runProblem(cfg)
	if err != nil {
		return err
	}

	fmt.Println("value condition:")
	fmt.Printf("  %s\n\n", result.ValueCondition)
	fmt.Println("derivative condition:")
	fmt.Printf("  %s\n\n", result.DerivCondition)
	fmt.Printf("coefficient of %s:\n", result.Target)
	fmt.Printf("  %s\n", result.Coefficient)

	if noSave {
		return nil
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listProblems(cmd *cobra.Command, args []string) error {
	registry := derive.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTARGET\tDESCRIPTION")
	for _, name := range registry.List() {
		problem, err := registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", problem.Name, problem.Target, problem.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tTIME\tCOEFFICIENT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			run.ID,
			run.Problem,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Coefficient,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func traceRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	trace, err := st.LoadDerivation(args[0])
	if err != nil {
		return err
	}
	fmt.Print(trace)
	return nil
}

func exportLatex(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	tex, err := st.LoadLaTeX(args[0])
	if err != nil {
		return err
	}
	fmt.Print(tex)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	registry := derive.NewRegistry()
	problem, err := registry.Get(cfg.Problem)
	if err != nil {
		return err
	}
	result, err := derive.Run(context.Background(), problem)
	if err != nil {
		return err
	}

	param := cfg.Sweep.Param
	if cmd.Flags().Changed("param") {
		param = sweepParam
	}
	if param == "" {
		param = problem.SweepParam
	}
	from, to, points := cfg.Sweep.From, cfg.Sweep.To, cfg.Sweep.Points
	if cmd.Flags().Changed("from") {
		from = sweepFrom
	}
	if cmd.Flags().Changed("to") {
		to = sweepTo
	}
	if cmd.Flags().Changed("points") {
		points = sweepPoints
	}

	values, err := derive.SweepCoefficient(result.Coefficient, param, cfg.Bindings, from, to, points)
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("coefficient of %s vs %s in [%.2f, %.2f]", result.Target, param, from, to)
	fmt.Println(viz.PlotSweep(values, caption))
	return nil
}

func runSteps(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	result, err := runProblem(cfg)
	if err != nil {
		return err
	}

	m := viz.NewStepsModel(result.Problem, result.Steps)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
