package calc

import (
	"fmt"

	"github.com/funvibe/fixed/pkg/fixed"
)

// Result is the outcome of one aggregator in a Run.
type Result struct {
	Name  string
	Value float64
}

// Total visits every aggregator in order and sums their results.
func Total(set fixed.HList[Aggregator]) (float64, error) {
	total := 0.0
	err := set.VisitErr(func(i int, a Aggregator) error {
		v, err := a.Update()
		if err != nil {
			return fmt.Errorf("aggregator %d (%s): %w", i, a.Name(), err)
		}
		total += v
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Run evaluates each aggregator of set, then revisits the aggregators of
// extra, and returns the per-aggregator results together with the grand
// total.
func Run(set, extra fixed.HList[Aggregator]) ([]Result, float64, error) {
	results := make([]Result, 0, set.Size()+extra.Size())
	total := 0.0
	collect := func(i int, a Aggregator) error {
		v, err := a.Update()
		if err != nil {
			return fmt.Errorf("aggregator %d (%s): %w", i, a.Name(), err)
		}
		results = append(results, Result{Name: a.Name(), Value: v})
		total += v
		return nil
	}
	if err := set.VisitErr(collect); err != nil {
		return nil, 0, err
	}
	if err := extra.VisitErr(collect); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
