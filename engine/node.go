package engine

import (
	"github.com/temoto/atm/currency"
)

// Node is one link of resolver chain, owns exactly one denomination.
// next == nil marks terminal end.
type Node struct {
	d    currency.Denomination
	next *Node
}

func (self *Node) Denomination() currency.Denomination { return self.d }
func (self *Node) Next() *Node                          { return self.next }
func (self *Node) String() string                       { return self.d.Label() }

// Validate reports whether text is exact label of this or any following node.
// Case-sensitive, no trimming.
func (self *Node) Validate(text string) bool {
	for n := self; n != nil; n = n.next {
		if text == n.d.Label() {
			return true
		}
	}
	return false
}

// Resolve reports whether amount in currency c decomposes starting at this node.
// Every node reduces amount modulo its value before passing to next,
// even when node currency differs from c. Currency only gates exact match.
func (self *Node) Resolve(amount currency.Amount, c currency.Currency) bool {
	for n := self; n != nil; n = n.next {
		switch n.step(amount, c) {
		case StepZero, StepMatch:
			return true
		}
		amount = n.reduce(amount)
	}
	return false
}

// step checks accept states in fixed order: zero first, then exact match.
func (self *Node) step(amount currency.Amount, c currency.Currency) StepKind {
	if amount == 0 {
		return StepZero
	}
	if c == self.d.Currency && amount == currency.Amount(self.d.Value) {
		return StepMatch
	}
	return StepReduce
}

// amount - floor(amount/value)*value, same as % for unsigned
func (self *Node) reduce(amount currency.Amount) currency.Amount {
	return amount % currency.Amount(self.d.Value)
}
