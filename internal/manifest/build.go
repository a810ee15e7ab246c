package manifest

import (
	"fmt"

	"github.com/funvibe/fixed/internal/calc"
	"github.com/funvibe/fixed/internal/config"
	"github.com/funvibe/fixed/pkg/fixed"
)

// Build constructs the aggregator set and the revisit set described by the
// manifest. Revisited aggregators are separate instances.
func (m *Manifest) Build() (set, revisit fixed.HList[calc.Aggregator], err error) {
	aggs := make([]calc.Aggregator, len(m.Aggregators))
	for i := range m.Aggregators {
		if aggs[i], err = m.Aggregators[i].Build(); err != nil {
			return set, revisit, fmt.Errorf("aggregators[%d]: %w", i, err)
		}
	}

	again := make([]calc.Aggregator, len(m.Revisit))
	for i, idx := range m.Revisit {
		if again[i], err = m.Aggregators[idx].Build(); err != nil {
			return set, revisit, fmt.Errorf("revisit[%d]: %w", i, err)
		}
	}

	return fixed.NewHList(aggs...), fixed.NewHList(again...), nil
}

// Build constructs a single aggregator.
func (a *AggregatorSpec) Build() (calc.Aggregator, error) {
	coefs := fixed.NewList(a.Coefs...)
	switch a.Kind {
	case config.KindCoefficients:
		return calc.NewCoefficients(coefs), nil
	case config.KindPaired:
		return calc.NewPaired(coefs, fixed.NewList(a.IDs...)), nil
	case config.KindGrouped:
		return calc.NewGrouped(fixed.NewTextList(a.Groups...), a.Members.Map(), coefs, a.Sentinel), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", a.Kind)
	}
}

// Map converts the group definitions to a fixed.Map in document order.
func (m Members) Map() fixed.Map[string, string] {
	entries := make([]fixed.Entry[string, string], len(m))
	for i, member := range m {
		entries[i] = fixed.Nested[string, string](member.Group, fixed.NewTextList(member.Names...))
	}
	return fixed.NewMap(entries...)
}
