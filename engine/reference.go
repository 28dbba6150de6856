package engine

import (
	"github.com/temoto/atm/currency"
)

// ReferenceOrder is traversal order of reference machine, head first.
// Order is configuration, not sorted by value or currency:
// dollar nodes reduce ruble requests before any ruble node sees them.
// 5$ is declared in currency.Catalog but was never wired, keep it out
// until owner decides, adding it changes outcomes.
func ReferenceOrder() []currency.Denomination {
	return []currency.Denomination{
		currency.Dollars(100),
		currency.Dollars(50),
		currency.Dollars(20),
		currency.Dollars(10),
		currency.Rubles(5000),
		currency.Dollars(2),
		currency.Dollars(1),
		currency.Rubles(2000),
		currency.Rubles(1000),
		currency.Rubles(500),
		currency.Rubles(200),
		currency.Rubles(100),
		currency.Rubles(50),
		currency.Rubles(10),
	}
}

func NewReference() *Chain { return MustNew(ReferenceOrder()...) }
