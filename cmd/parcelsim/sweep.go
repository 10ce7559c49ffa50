package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/cloudparcel/internal/config"
	"github.com/san-kum/cloudparcel/internal/parcel"
	"github.com/san-kum/cloudparcel/internal/storage"
	"github.com/san-kum/cloudparcel/internal/sweep"
)

var (
	planFile     string
	sweepParam   string
	sweepValues  []float64
	sweepPop     string
	sweepWorkers int
	compareIce   bool
	saveSweep    bool
	onsetRates   []float64
)

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&planFile, "plan", "", "sweep plan file (yaml)")
	cmd.Flags().StringVar(&sweepPreset, "preset", "simple", "base preset")
	cmd.Flags().StringVar(&sweepParam, "param", sweep.ParamDt, "swept parameter (updraft, cooling_rate, dt, number)")
	cmd.Flags().Float64SliceVar(&sweepValues, "values", []float64{0.5, 1, 2}, "parameter values")
	cmd.Flags().StringVar(&sweepPop, "population", "pollen", "population for number sweeps")
	cmd.Flags().StringVar(&policy, "policy", string(config.PolicyLinear), "updraft to cooling policy")
	cmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel runs (0 = all CPUs)")
	cmd.Flags().BoolVar(&compareIce, "compare-ice", false, "run every variant with and without ice physics")
	cmd.Flags().BoolVar(&saveSweep, "save", false, "store every variant run")
}

func sweepPlan(cmd *cobra.Command) (*sweep.Plan, error) {
	if planFile != "" {
		plan, err := sweep.LoadPlan(planFile)
		if err != nil {
			return nil, err
		}
		if cmd.Flags().Changed("workers") {
			plan.Workers = sweepWorkers
		}
		return plan, nil
	}
	return &sweep.Plan{
		Name:          sweepParam,
		Preset:        sweepPreset,
		Parameter:     sweepParam,
		Population:    sweepPop,
		CoolingPolicy: config.CoolingPolicy(policy),
		Values:        sweepValues,
		Workers:       sweepWorkers,
	}, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	plan, err := sweepPlan(cmd)
	if err != nil {
		return err
	}
	base, err := plan.Base()
	if err != nil {
		return err
	}
	sc, err := base.ToScenario()
	if err != nil {
		return err
	}
	variants, err := plan.Variants()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner := sweep.NewRunner(plan.Workers)
	runner.Log = log

	log.WithFields(logrus.Fields{
		"base":      sc.Name,
		"parameter": plan.Parameter,
		"variants":  len(variants),
	}).Info("running sweep")

	if compareIce {
		return compareIceSweep(ctx, runner, sc, variants)
	}

	outcomes, err := runner.Run(ctx, sc, variants)
	if err != nil {
		return err
	}
	if saveSweep {
		if err := saveOutcomes(outcomes); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CASE\tPEAK S\tT_PEAK\tICE ONSET\tONSET T\tCLAMPS\tSTABILITY")
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\terror: %v\n", o.Label, o.Err)
			continue
		}
		r := o.Result
		onsetT, onsetTemp := "None", "None"
		if r.IceOnset != nil {
			onsetT = fmt.Sprintf("%.0fs", r.IceOnset.Time)
			onsetTemp = fmt.Sprintf("%.2fK", r.IceOnset.Temperature)
		}
		fmt.Fprintf(w, "%s\t% .3e\t%.0fs\t%s\t%s\t%d\t%s\n",
			o.Label, r.PeakS, r.PeakTime, onsetT, onsetTemp, r.ClampCount, o.Classification)
	}
	return w.Flush()
}

// compareIceSweep runs the variants twice, with ice physics off and on, and
// prints the peak supersaturation of both side by side.
func compareIceSweep(ctx context.Context, runner *sweep.Runner, sc parcel.Scenario, variants []sweep.Variant) error {
	noIce := sc.Clone()
	noIce.IceEnabled = false
	withIce := sc.Clone()
	withIce.IceEnabled = true

	liquid, err := runner.Run(ctx, noIce, variants)
	if err != nil {
		return err
	}
	mixed, err := runner.Run(ctx, withIce, variants)
	if err != nil {
		return err
	}
	if saveSweep {
		if err := saveOutcomes(append(liquid, mixed...)); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CASE\tPEAK S (NO ICE)\tPEAK S (ICE)\tICE ONSET\tONSET T")
	for i := range variants {
		a, b := liquid[i], mixed[i]
		if a.Err != nil || b.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\terror: %v\n", a.Label, firstErr(a.Err, b.Err))
			continue
		}
		onsetT, onsetTemp := "None", "None"
		if on := b.Result.IceOnset; on != nil {
			onsetT = fmt.Sprintf("%.0fs", on.Time)
			onsetTemp = fmt.Sprintf("%.2fK", on.Temperature)
		}
		fmt.Fprintf(w, "%s\t% .3e\t% .3e\t%s\t%s\n", a.Label, a.Result.PeakS, b.Result.PeakS, onsetT, onsetTemp)
	}
	return w.Flush()
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func saveOutcomes(outcomes []sweep.Outcome) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		sc := o.Scenario
		sc.Name = fmt.Sprintf("%s_%s_%g", sc.Name, sweepParam, o.Value)
		id, err := st.Save(sc, o.Result)
		if err != nil {
			return err
		}
		log.WithField("run_id", id).Debug("variant stored")
	}
	return nil
}

func runOnset(cmd *cobra.Command, args []string) error {
	base, err := config.LookupPreset(onsetPreset)
	if err != nil {
		return err
	}
	base.Ice.Enabled = true
	sc, err := base.ToScenario()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner := sweep.NewRunner(0)
	runner.Log = log
	outcomes, err := runner.Run(ctx, sc, sweep.CoolingRate(onsetRates...))
	if err != nil {
		return err
	}

	fmt.Println("Biological IN onset test (cooling parcel)")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COOLING RATE (K/s)\tONSET T (s)\tONSET TEMP (K)\tN_ACTIVE (m^-3)\tSPECIES")
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "%.3f\terror: %v\t\t\t\n", o.Value, o.Err)
			continue
		}
		on := o.Result.IceOnset
		if on == nil {
			fmt.Fprintf(w, "%.3f\tNone\tNone\tNone\t-\n", o.Value)
			continue
		}
		fmt.Fprintf(w, "%.3f\t%.0f\t%.2f\t%.3e\t%s\n", o.Value, on.Time, on.Temperature, on.NActive, on.Species)
	}
	return w.Flush()
}
