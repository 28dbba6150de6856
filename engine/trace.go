package engine

import (
	"fmt"
	"strings"

	"github.com/temoto/atm/currency"
)

type StepKind uint8

const (
	StepReduce StepKind = iota // amount reduced, passed to next node
	StepZero                   // amount exhausted, terminal success
	StepMatch                  // exact currency and value match
)

func (k StepKind) String() string {
	switch k {
	case StepReduce:
		return "reduce"
	case StepZero:
		return "zero"
	case StepMatch:
		return "match"
	}
	return fmt.Sprintf("step(%d)", uint8(k))
}

type Outcome uint8

const (
	OutcomeExhausted Outcome = iota // chain ended without accept
	OutcomeZero
	OutcomeMatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeZero:
		return "zero"
	case OutcomeMatch:
		return "match"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// Step is one visited node. Amount is value entering the node.
type Step struct {
	Denomination currency.Denomination
	Amount       currency.Amount
	Kind         StepKind
}

// Trace is diagnostic record of one Resolve walk.
// It tells how amount was reduced, never which notes to eject.
type Trace struct {
	Amount   currency.Amount
	Currency currency.Currency
	Steps    []Step
	Outcome  Outcome
	Accepted bool
}

// Last returns final visited step, ok=false for empty trace.
func (self *Trace) Last() (Step, bool) {
	if len(self.Steps) == 0 {
		return Step{}, false
	}
	return self.Steps[len(self.Steps)-1], true
}

// amount=2055 currency=ruble 100$:2055 50$:55 ... 2000 Rubles:0=zero result=true
func (self *Trace) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "amount=%d currency=%s", self.Amount, self.Currency)
	for _, s := range self.Steps {
		fmt.Fprintf(&b, " %s:%d", s.Denomination.Label(), s.Amount)
		if s.Kind != StepReduce {
			b.WriteString("=" + s.Kind.String())
		}
	}
	fmt.Fprintf(&b, " outcome=%s result=%t", self.Outcome, self.Accepted)
	return b.String()
}

// Explain walks chain exactly like Resolve and records every step.
func (self *Chain) Explain(amount currency.Amount, c currency.Currency) Trace {
	tr := Trace{
		Amount:   amount,
		Currency: c,
		Steps:    make([]Step, 0, self.len),
	}
	for n := self.head; n != nil; n = n.next {
		kind := n.step(amount, c)
		tr.Steps = append(tr.Steps, Step{Denomination: n.d, Amount: amount, Kind: kind})
		switch kind {
		case StepZero:
			tr.Outcome, tr.Accepted = OutcomeZero, true
			return tr
		case StepMatch:
			tr.Outcome, tr.Accepted = OutcomeMatch, true
			return tr
		}
		amount = n.reduce(amount)
	}
	tr.Outcome = OutcomeExhausted
	return tr
}
