// Package engine implements banknote resolver chain.
// Request enters at head node and walks linearly until a node accepts
// (amount exhausted to zero, or exact currency+value match)
// or chain ends (reject). There is no backtracking.
package engine

import (
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/atm/currency"
	"github.com/temoto/atm/helpers"
	"github.com/temoto/atm/log2"
)

var ErrEmptyChain = errors.New("resolver chain must have at least one denomination")

// Chain is immutable after New, safe for concurrent Validate/Resolve.
type Chain struct {
	head *Node
	len  int
	log  *log2.Log
}

// New builds chain from denominations in traversal order, first is head.
// Nodes are wrapped back to front: each new node becomes head over already built tail.
func New(order ...currency.Denomination) (*Chain, error) {
	const tag = "engine.new"
	if len(order) == 0 {
		return nil, errors.Annotate(ErrEmptyChain, tag)
	}

	errs := make([]error, 0)
	seen := make(map[currency.Denomination]int, len(order))
	for i, d := range order {
		if err := d.Validate(); err != nil {
			errs = append(errs, errors.Annotatef(err, "%s position=%d", tag, i))
			continue
		}
		if prev, ok := seen[d]; ok {
			errs = append(errs, errors.AlreadyExistsf("%s denomination=%s position=%d first=%d", tag, d.Label(), i, prev))
			continue
		}
		seen[d] = i
	}
	if err := helpers.FoldErrors(errs); err != nil {
		return nil, err
	}

	var head *Node
	for i := len(order) - 1; i >= 0; i-- {
		head = &Node{d: order[i], next: head}
	}
	return &Chain{head: head, len: len(order)}, nil
}

func MustNew(order ...currency.Denomination) *Chain {
	c, err := New(order...)
	if err != nil {
		panic("code error engine.MustNew: " + errors.ErrorStack(err))
	}
	return c
}

// SetLog enables debug trace of Resolve. Call before sharing chain.
func (self *Chain) SetLog(log *log2.Log) { self.log = log }

func (self *Chain) Head() *Node { return self.head }
func (self *Chain) Len() int    { return self.len }

// Validate reports whether text is exact label of any wired denomination.
func (self *Chain) Validate(text string) bool {
	return self.head.Validate(text)
}

// Resolve reports whether amount in currency c is decomposable by this chain.
func (self *Chain) Resolve(amount currency.Amount, c currency.Currency) bool {
	const tag = "engine.resolve"
	if self.log.Enabled(log2.LDebug) {
		tr := self.Explain(amount, c)
		self.log.Debugf("%s %s", tag, tr.String())
		return tr.Accepted
	}
	return self.head.Resolve(amount, c)
}

// Denominations returns copy of chain order, head first.
func (self *Chain) Denominations() []currency.Denomination {
	result := make([]currency.Denomination, 0, self.len)
	for n := self.head; n != nil; n = n.next {
		result = append(result, n.d)
	}
	return result
}

func (self *Chain) Contains(d currency.Denomination) bool {
	for n := self.head; n != nil; n = n.next {
		if n.d == d {
			return true
		}
	}
	return false
}

// Labels returns labels in chain order.
func (self *Chain) Labels() []string {
	result := make([]string, 0, self.len)
	for n := self.head; n != nil; n = n.next {
		result = append(result, n.d.Label())
	}
	return result
}

func (self *Chain) String() string {
	return strings.Join(self.Labels(), " -> ")
}
