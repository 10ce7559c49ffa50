package sweep

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/cloudparcel/internal/metrics"
	"github.com/san-kum/cloudparcel/internal/parcel"
)

// Outcome is the result of one variant. Err is set when the variant's
// scenario was invalid; the other variants still run.
type Outcome struct {
	Label          string
	Value          float64
	Scenario       parcel.Scenario
	Result         *parcel.Result
	Classification metrics.Classification
	Err            error
}

type Runner struct {
	Workers int
	Log     logrus.FieldLogger
}

func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{Workers: workers, Log: logrus.StandardLogger()}
}

// Run executes every variant against its own copy of base. Outcomes are
// returned in input order. The returned error is non-nil only when ctx was
// cancelled.
func (r *Runner) Run(ctx context.Context, base parcel.Scenario, variants []Variant) ([]Outcome, error) {
	outcomes := make([]Outcome, len(variants))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	for i, v := range variants {
		i, v := i, v
		g.Go(func() error {
			sc := base.Clone()
			if v.Apply != nil {
				v.Apply(&sc)
			}
			out := Outcome{Label: v.Label, Value: v.Value, Scenario: sc}

			sim, err := parcel.New(sc,
				parcel.WithLogger(r.Log.WithField("variant", v.Label)),
				parcel.WithMetrics(metrics.Default()...),
			)
			if err != nil {
				out.Err = err
				outcomes[i] = out
				r.Log.WithError(err).WithField("variant", v.Label).Warn("variant skipped")
				return nil
			}

			res, err := sim.Run(ctx)
			if err != nil {
				return err
			}
			out.Result = res
			out.Classification = metrics.Classify(res)
			outcomes[i] = out

			r.Log.WithFields(logrus.Fields{
				"variant":   v.Label,
				"peak_s":    res.PeakS,
				"stability": out.Classification.String(),
			}).Debug("variant complete")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// Run is a convenience wrapper around a Runner with the standard logger.
func Run(ctx context.Context, base parcel.Scenario, variants []Variant, workers int) ([]Outcome, error) {
	return NewRunner(workers).Run(ctx, base, variants)
}
