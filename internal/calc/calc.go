// Package calc implements aggregators that read their configuration from
// fixed containers: a coefficient sum, a paired weighted sum over two lists,
// and a grouped count weighted by coefficients.
//
// Aggregators hold only immutable configuration, so one instance may be
// updated from several goroutines at once.
package calc

import (
	"fmt"

	"github.com/funvibe/fixed/internal/config"
	"github.com/funvibe/fixed/pkg/fixed"
)

// Aggregator computes one number from fixed configuration.
type Aggregator interface {
	Name() string
	Update() (float64, error)
}

// Tracer is implemented by aggregators that produce a running total.
type Tracer interface {
	Trace() ([]float64, error)
}

// Coefficients sums a list of coefficients.
type Coefficients struct {
	coefs fixed.List[float64]
}

// NewCoefficients creates a Coefficients aggregator over coefs.
func NewCoefficients(coefs fixed.List[float64]) *Coefficients {
	return &Coefficients{coefs: coefs}
}

// Name returns config.KindCoefficients.
func (c *Coefficients) Name() string { return config.KindCoefficients }

// Update returns the sum of the coefficients.
func (c *Coefficients) Update() (float64, error) {
	sum := 0.0
	for i := 0; i < c.coefs.Size(); i++ {
		v, err := c.coefs.At(i)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

// Paired accumulates coef[i] * id[j] over every (i, j) pair, i outermost.
type Paired struct {
	coefs fixed.List[float64]
	ids   fixed.List[uint64]
}

// NewPaired creates a Paired aggregator over coefs and ids.
func NewPaired(coefs fixed.List[float64], ids fixed.List[uint64]) *Paired {
	return &Paired{coefs: coefs, ids: ids}
}

// Name returns config.KindPaired.
func (p *Paired) Name() string { return config.KindPaired }

// Update returns the final running total, or 0 when either list is empty.
func (p *Paired) Update() (float64, error) {
	trace, err := p.Trace()
	if err != nil {
		return 0, err
	}
	return last(trace), nil
}

// Trace returns the running total after each (i, j) pair.
func (p *Paired) Trace() ([]float64, error) {
	trace := make([]float64, 0, p.coefs.Size()*p.ids.Size())
	sum := 0.0
	for i := 0; i < p.coefs.Size(); i++ {
		coef, err := p.coefs.At(i)
		if err != nil {
			return nil, err
		}
		for j := 0; j < p.ids.Size(); j++ {
			id, err := p.ids.At(j)
			if err != nil {
				return nil, err
			}
			sum += coef * float64(id)
			trace = append(trace, sum)
		}
	}
	return trace, nil
}

// Grouped counts, for each group, the members equal to a sentinel name and
// accumulates count * coef over every coefficient.
type Grouped struct {
	groups   fixed.TextList
	defs     fixed.Map[string, string]
	coefs    fixed.List[float64]
	sentinel string
}

// NewGrouped creates a Grouped aggregator. An empty sentinel selects
// config.DefaultSentinel.
func NewGrouped(groups fixed.TextList, defs fixed.Map[string, string], coefs fixed.List[float64], sentinel string) *Grouped {
	if sentinel == "" {
		sentinel = config.DefaultSentinel
	}
	return &Grouped{groups: groups, defs: defs, coefs: coefs, sentinel: sentinel}
}

// Name returns config.KindGrouped.
func (g *Grouped) Name() string { return config.KindGrouped }

// Sentinel returns the member name being counted.
func (g *Grouped) Sentinel() string { return g.sentinel }

// Update returns the final running total. It fails if a group has no entry
// in the definitions map.
func (g *Grouped) Update() (float64, error) {
	trace, err := g.Trace()
	if err != nil {
		return 0, err
	}
	return last(trace), nil
}

// Trace returns the running total after each (group, coef) pair.
func (g *Grouped) Trace() ([]float64, error) {
	trace := make([]float64, 0, g.groups.Size()*g.coefs.Size())
	sum := 0.0
	for i := 0; i < g.groups.Size(); i++ {
		group, err := g.groups.At(i)
		if err != nil {
			return nil, err
		}
		count, err := g.countMembers(group)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", group, err)
		}
		for j := 0; j < g.coefs.Size(); j++ {
			coef, err := g.coefs.At(j)
			if err != nil {
				return nil, err
			}
			sum += float64(count) * coef
			trace = append(trace, sum)
		}
	}
	return trace, nil
}

func (g *Grouped) countMembers(group string) (int, error) {
	size, err := g.defs.SizeOf(group)
	if err != nil {
		return 0, err
	}
	count := 0
	for ni := 0; ni < size; ni++ {
		member, err := g.defs.GetAt(group, ni)
		if err != nil {
			return 0, err
		}
		if member == g.sentinel {
			count++
		}
	}
	return count, nil
}

func last(trace []float64) float64 {
	if len(trace) == 0 {
		return 0
	}
	return trace[len(trace)-1]
}
