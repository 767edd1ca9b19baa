package domain

// CartItems maps product id to quantity. Non-positive quantities never
// appear as entries.
type CartItems map[string]int

// Normalized returns a copy without blank ids or non-positive quantities.
func (c CartItems) Normalized() CartItems {
	out := make(CartItems, len(c))
	for id, qty := range c {
		if id == "" || qty <= 0 {
			continue
		}
		out[id] = qty
	}
	return out
}

// Clamped returns a copy with every quantity capped at max. A non-positive
// max leaves quantities as they are.
func (c CartItems) Clamped(max int) CartItems {
	out := make(CartItems, len(c))
	for id, qty := range c {
		if max > 0 && qty > max {
			qty = max
		}
		out[id] = qty
	}
	return out
}

// Count is the total number of units.
func (c CartItems) Count() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}
