package calc

import "github.com/funvibe/fixed/pkg/fixed"

// Reference returns the built-in configuration used when no manifest is
// given: one aggregator of each kind, and a revisit set holding a fresh
// coefficient and paired aggregator.
func Reference() (set, revisit fixed.HList[Aggregator]) {
	set = fixed.NewHList[Aggregator](
		referenceCoefficients(),
		referencePaired(),
		referenceGrouped(),
	)
	revisit = fixed.NewHList[Aggregator](
		referenceCoefficients(),
		referencePaired(),
	)
	return set, revisit
}

// RunReference evaluates Reference and returns the grand total.
func RunReference() (float64, error) {
	set, revisit := Reference()
	val, err := Total(set)
	if err != nil {
		return 0, err
	}
	lval, err := Total(revisit)
	if err != nil {
		return 0, err
	}
	return val + lval, nil
}

func referenceCoefficients() *Coefficients {
	return NewCoefficients(fixed.NewList(0.9999, 0.998, 0.9333, 0.5))
}

func referencePaired() *Paired {
	return NewPaired(fixed.NewList(0.5, 0.25), fixed.NewList[uint64](1, 2))
}

func referenceGrouped() *Grouped {
	return NewGrouped(
		fixed.NewTextList("chicken", "beef"),
		fixed.NewMap(
			fixed.Nested[string, string]("chicken", fixed.NewTextList("foo", "bar")),
			fixed.Nested[string, string]("beef", fixed.NewTextList("baz", "bat")),
		),
		fixed.NewList(0.5, 0.25),
		"",
	)
}
