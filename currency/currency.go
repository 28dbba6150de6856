package currency

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// Amount is integer counting whole currency units, e.g. 2033 dollars = 2033
type Amount uint32

func (self Amount) String() string { return strconv.FormatUint(uint64(self), 10) }

// Nominal is face value of one banknote
type Nominal Amount

// Currency is closed set of supported currency tags.
// Add new tag here, then teach Label and ParseLabel its grammar.
type Currency uint8

const (
	Dollar Currency = iota
	Ruble
	currencyCount
)

const (
	dollarSuffix = "$"
	rubleSuffix  = " Rubles"
)

var ErrCurrencyInvalid = errors.New("currency is not valid")

func (c Currency) Valid() bool { return c < currencyCount }

func (c Currency) String() string {
	switch c {
	case Dollar:
		return "dollar"
	case Ruble:
		return "ruble"
	}
	return fmt.Sprintf("currency(%d)", uint8(c))
}

// ParseCurrency accepts tag name, ISO code or symbol, case-insensitive.
func ParseCurrency(s string) (Currency, error) {
	switch strings.ToLower(s) {
	case "dollar", "dollars", "usd", "$":
		return Dollar, nil
	case "ruble", "rubles", "rub", "rur", "₽":
		return Ruble, nil
	}
	return currencyCount, errors.NotValidf("currency=%q", s)
}

// Denomination is one banknote kind: currency and face value.
type Denomination struct {
	Currency Currency
	Value    Nominal
}

func New(c Currency, value Nominal) Denomination { return Denomination{Currency: c, Value: value} }

func Dollars(value Nominal) Denomination { return New(Dollar, value) }
func Rubles(value Nominal) Denomination  { return New(Ruble, value) }

// Label is the exact banknote text accepted by validation.
// "50$" for dollars, "100 Rubles" for rubles.
func (d Denomination) Label() string {
	v := strconv.FormatUint(uint64(d.Value), 10)
	switch d.Currency {
	case Dollar:
		return v + dollarSuffix
	case Ruble:
		return v + rubleSuffix
	}
	return v + " " + d.Currency.String()
}

func (d Denomination) String() string { return d.Label() }

func (d Denomination) Validate() error {
	if !d.Currency.Valid() {
		return errors.Annotatef(ErrCurrencyInvalid, "denomination value=%d currency=%s", d.Value, d.Currency)
	}
	if d.Value == 0 {
		return errors.NotValidf("denomination=%s zero value", d.Label())
	}
	return nil
}

// ParseLabel is inverse of Label. No trimming, same as validation.
func ParseLabel(s string) (Denomination, error) {
	var c Currency
	var digits string
	switch {
	case strings.HasSuffix(s, rubleSuffix):
		c, digits = Ruble, strings.TrimSuffix(s, rubleSuffix)
	case strings.HasSuffix(s, dollarSuffix):
		c, digits = Dollar, strings.TrimSuffix(s, dollarSuffix)
	default:
		return Denomination{}, errors.NotValidf("banknote label=%q", s)
	}
	// ParseUint would take "+5", labels never have sign
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return Denomination{}, errors.NotValidf("banknote label=%q value", s)
	}
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return Denomination{}, errors.Annotatef(err, "banknote label=%q", s)
	}
	d := New(c, Nominal(v))
	if err := d.Validate(); err != nil {
		return Denomination{}, err
	}
	// reject "050$", label must be canonical
	if d.Label() != s {
		return Denomination{}, errors.NotValidf("banknote label=%q not canonical, expected=%q", s, d.Label())
	}
	return d, nil
}
