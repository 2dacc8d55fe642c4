package domain

// Product prices in KRW.
const (
	PricePremium = 29800
	PriceCouple  = 55000
	PriceYear    = 19800
)

// ProductPrice returns the list price for a product code, 0 for unknown.
func ProductPrice(product string) int {
	switch product {
	case ProductPremium:
		return PricePremium
	case ProductCouple:
		return PriceCouple
	case ProductYear:
		return PriceYear
	default:
		return 0
	}
}

// CompanionsTotal prices a companion list. Couple selections are bundled:
// each pair (rounded up) costs one couple-package price, everything else is
// summed per person.
func CompanionsTotal(companions []Companion) int {
	coupleCount := 0
	total := 0
	for _, c := range companions {
		if c.Product == ProductCouple {
			coupleCount++
			continue
		}
		total += ProductPrice(c.Product)
	}
	total += (coupleCount + 1) / 2 * PriceCouple
	return total
}

// Total prices the whole record.
func (r Record) Total() int {
	return CompanionsTotal(r.Companions)
}
