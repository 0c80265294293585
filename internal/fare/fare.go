package fare

import (
	"github.com/shindong96/atdd-subway-path/internal/domain"
)

// Calculator applies a Policy. The zero value is not usable; build one with
// New. A Calculator holds no mutable state.
type Calculator struct {
	policy Policy
}

// New validates policy and returns a Calculator for it.
func New(policy Policy) (*Calculator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{policy: policy.resolved()}, nil
}

// Default returns a Calculator for DefaultPolicy.
func Default() *Calculator {
	return &Calculator{policy: DefaultPolicy().resolved()}
}

// Policy returns a copy of the table in use.
func (c *Calculator) Policy() Policy {
	p := c.policy
	p.Tiers = append([]Tier(nil), c.policy.Tiers...)
	p.Brackets = append([]AgeBracket(nil), c.policy.Brackets...)
	return p
}

// Calculate returns the fare for distance kilometres. A nil age means no age
// was supplied and no discount applies.
func (c *Calculator) Calculate(distance int, age *int) (int, error) {
	if distance < 0 {
		return 0, &domain.Error{Kind: domain.KindInvalidDistance, Value: distance}
	}
	if age != nil && *age < 0 {
		return 0, &domain.Error{Kind: domain.KindInvalidAge, Value: *age}
	}

	fare := c.DistanceFare(distance)
	if age == nil {
		return fare, nil
	}
	return c.discount(fare, *age), nil
}

// DistanceFare is the undiscounted fare for distance kilometres.
func (c *Calculator) DistanceFare(distance int) int {
	fare := c.policy.BaseFare
	if distance <= c.policy.BaseDistance {
		return fare
	}
	for _, t := range c.policy.Tiers {
		if distance <= t.From {
			break
		}
		upper := distance
		if t.To != 0 && upper > t.To {
			upper = t.To
		}
		units := (upper - t.From + t.Unit - 1) / t.Unit
		fare += units * t.Rate
	}
	return fare
}

func (c *Calculator) discount(fare, age int) int {
	if c.policy.InfantsFree && age <= c.policy.InfantMaxAge {
		return 0
	}
	for _, b := range c.policy.Brackets {
		if age < b.MinAge || age > b.MaxAge {
			continue
		}
		discountable := fare - c.policy.Deduction
		if discountable <= 0 {
			return fare
		}
		// integer division floors the discount once
		return fare - discountable*b.DiscountPercent/100
	}
	return fare
}
