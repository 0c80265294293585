// Package fare derives the fare of a trip from its distance and the rider's
// age. The amounts and thresholds live in a Policy table.
package fare

import (
	"errors"
	"fmt"
	"sort"
)

// Tier is a distance band that adds Rate for every Unit kilometres, or part
// thereof, travelled inside (From, To]. A zero From starts the band where the
// previous one ended, or at the policy's BaseDistance for the first band. A
// zero To leaves the band unbounded.
type Tier struct {
	From int `hcl:"from,optional"`
	To   int `hcl:"to,optional"`
	Unit int `hcl:"unit"`
	Rate int `hcl:"rate"`
}

// AgeBracket discounts riders whose age falls in [MinAge, MaxAge].
type AgeBracket struct {
	Name            string `hcl:"name,label"`
	MinAge          int    `hcl:"min_age"`
	MaxAge          int    `hcl:"max_age"`
	DiscountPercent int    `hcl:"discount_percent"`
}

// Policy is the complete fare table. Every trip up to BaseDistance costs
// BaseFare. Age discounts apply to the part of the fare above Deduction.
type Policy struct {
	BaseFare     int          `hcl:"base_fare"`
	BaseDistance int          `hcl:"base_distance"`
	Tiers        []Tier       `hcl:"tier,block"`
	Deduction    int          `hcl:"deduction,optional"`
	Brackets     []AgeBracket `hcl:"bracket,block"`
	InfantMaxAge int          `hcl:"infant_max_age,optional"`
	InfantsFree  bool         `hcl:"infants_free,optional"`
}

// DefaultPolicy is the built-in fare table: 1,250 up to 10 km, 100 per 5 km
// up to 50 km, 100 per 8 km beyond. The deduction equals the base fare, so
// teenagers (13-18, 20%) and children (6-12, 50%) are discounted only on the
// distance surcharge. Riders aged 5 or under travel free.
func DefaultPolicy() Policy {
	return Policy{
		BaseFare:     1250,
		BaseDistance: 10,
		Tiers: []Tier{
			{From: 10, To: 50, Unit: 5, Rate: 100},
			{From: 50, Unit: 8, Rate: 100},
		},
		Deduction: 1250,
		Brackets: []AgeBracket{
			{Name: "teenager", MinAge: 13, MaxAge: 18, DiscountPercent: 20},
			{Name: "child", MinAge: 6, MaxAge: 12, DiscountPercent: 50},
		},
		InfantMaxAge: 5,
		InfantsFree:  true,
	}
}

// resolved returns a copy of p with every implicit tier lower bound filled in.
func (p Policy) resolved() Policy {
	tiers := make([]Tier, len(p.Tiers))
	last := p.BaseDistance
	for i, t := range p.Tiers {
		if t.From == 0 {
			t.From = last
		}
		tiers[i] = t
		last = t.To
	}
	p.Tiers = tiers
	p.Brackets = append([]AgeBracket(nil), p.Brackets...)
	return p
}

// Validate checks the table is internally consistent.
func (p Policy) Validate() error {
	if p.BaseFare < 0 {
		return fmt.Errorf("base fare %d must not be negative", p.BaseFare)
	}
	if p.BaseDistance < 0 {
		return fmt.Errorf("base distance %d must not be negative", p.BaseDistance)
	}
	if p.Deduction < 0 {
		return fmt.Errorf("deduction %d must not be negative", p.Deduction)
	}

	last := p.BaseDistance
	for i, t := range p.resolved().Tiers {
		if t.Unit <= 0 {
			return fmt.Errorf("tier %d: unit must be positive", i)
		}
		if t.Rate < 0 {
			return fmt.Errorf("tier %d: rate must not be negative", i)
		}
		if t.From < last {
			return fmt.Errorf("tier %d starts at %d, before previous bound %d", i, t.From, last)
		}
		if t.To == 0 {
			if i != len(p.Tiers)-1 {
				return fmt.Errorf("tier %d is unbounded but is not the last tier", i)
			}
			continue
		}
		if t.To <= t.From {
			return fmt.Errorf("tier %d: upper bound %d must exceed %d", i, t.To, t.From)
		}
		last = t.To
	}

	brackets := append([]AgeBracket(nil), p.Brackets...)
	sort.Slice(brackets, func(a, b int) bool { return brackets[a].MinAge < brackets[b].MinAge })
	for i, b := range brackets {
		if b.MinAge < 0 || b.MaxAge < b.MinAge {
			return fmt.Errorf("bracket %q: invalid age range %d-%d", b.Name, b.MinAge, b.MaxAge)
		}
		if b.DiscountPercent < 0 || b.DiscountPercent > 100 {
			return fmt.Errorf("bracket %q: discount %d%% out of range", b.Name, b.DiscountPercent)
		}
		if p.InfantsFree && b.MinAge <= p.InfantMaxAge {
			return fmt.Errorf("bracket %q overlaps the infant range", b.Name)
		}
		if i > 0 && b.MinAge <= brackets[i-1].MaxAge {
			return fmt.Errorf("bracket %q overlaps %q", b.Name, brackets[i-1].Name)
		}
	}
	if p.InfantsFree && p.InfantMaxAge < 0 {
		return errors.New("infant max age must not be negative")
	}
	return nil
}
