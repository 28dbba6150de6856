// Package atm is banknote facade of teller machine.
// Overview:
// - driver->atm: Validate(text) is this banknote accepted
// - driver->atm: CashOut(amount, currency) can amount be decomposed
// Both forward to resolver chain head. Machine only checks raw input
// the chain cannot represent.
package atm

import (
	"math"

	"github.com/juju/errors"
	"github.com/temoto/atm/currency"
	"github.com/temoto/atm/engine"
	"github.com/temoto/atm/log2"
)

var (
	ErrNegativeAmount = errors.NotValidf("negative amount")
	ErrAmountOverflow = errors.NotValidf("amount overflow")
)

type Machine struct {
	Log   *log2.Log
	chain *engine.Chain
}

func New(chain *engine.Chain, log *log2.Log) *Machine {
	if chain == nil {
		panic("code error atm.New chain=nil")
	}
	return &Machine{Log: log, chain: chain}
}

func (self *Machine) Chain() *engine.Chain { return self.chain }

func (self *Machine) Validate(text string) bool {
	const tag = "atm.validate"
	ok := self.chain.Validate(text)
	self.Log.Debugf("%s text=%q result=%t", tag, text, ok)
	return ok
}

// CashOut reports whether amount in currency c can be paid by configured banknotes.
// Error only for amount the engine cannot take: negative or above Amount range.
func (self *Machine) CashOut(amount int, c currency.Currency) (bool, error) {
	const tag = "atm.cashout"
	a, err := checkAmount(amount)
	if err != nil {
		return false, errors.Annotatef(err, "%s amount=%d", tag, amount)
	}
	ok := self.chain.Resolve(a, c)
	self.Log.Debugf("%s amount=%d currency=%s result=%t", tag, amount, c, ok)
	return ok, nil
}

// Explain is CashOut with full walk trace.
func (self *Machine) Explain(amount int, c currency.Currency) (engine.Trace, error) {
	const tag = "atm.explain"
	a, err := checkAmount(amount)
	if err != nil {
		return engine.Trace{}, errors.Annotatef(err, "%s amount=%d", tag, amount)
	}
	return self.chain.Explain(a, c), nil
}

func checkAmount(amount int) (currency.Amount, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	if uint64(amount) > math.MaxUint32 {
		return 0, ErrAmountOverflow
	}
	return currency.Amount(amount), nil
}
