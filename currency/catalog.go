package currency

// Catalog lists every declared banknote, ordered by currency then value.
// Declared is not the same as accepted: only denominations wired into
// a resolver chain validate, see engine.ReferenceOrder.
var Catalog = []Denomination{
	Dollars(1),
	Dollars(2),
	Dollars(5),
	Dollars(10),
	Dollars(20),
	Dollars(50),
	Dollars(100),

	Rubles(10),
	Rubles(50),
	Rubles(100),
	Rubles(200),
	Rubles(500),
	Rubles(1000),
	Rubles(2000),
	Rubles(5000),
}

// Declared reports whether d is in Catalog.
func Declared(d Denomination) bool {
	for _, x := range Catalog {
		if x == d {
			return true
		}
	}
	return false
}

// CatalogOf returns declared denominations of one currency.
func CatalogOf(c Currency) []Denomination {
	result := make([]Denomination, 0, len(Catalog))
	for _, d := range Catalog {
		if d.Currency == c {
			result = append(result, d)
		}
	}
	return result
}
