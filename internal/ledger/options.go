package ledger

import (
	"fmt"
	"strings"
)

// ExpenseMode selects how itemized expenses enter the balance math.
type ExpenseMode int

const (
	// ExpensePooled adds pending expenses to the equal-split pool, credits the
	// creator with the full amount and debits each other participant's share.
	ExpensePooled ExpenseMode = iota

	// ExpenseItemized keeps pending expenses out of the equal-split pool and
	// credits the creator only with the shares assigned to other participants.
	ExpenseItemized
)

func (m ExpenseMode) String() string {
	switch m {
	case ExpenseItemized:
		return "itemized"
	default:
		return "pooled"
	}
}

// ParseExpenseMode parses "pooled" or "itemized" (case-insensitive).
func ParseExpenseMode(s string) (ExpenseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pooled":
		return ExpensePooled, nil
	case "itemized":
		return ExpenseItemized, nil
	default:
		return ExpensePooled, fmt.Errorf("unknown expense mode %q: must be pooled or itemized", s)
	}
}

// Options tune the balance computation.
type Options struct {
	Expenses ExpenseMode
}

// Option configures Options.
type Option func(*Options)

// WithExpenseMode selects how pending expenses are accounted for.
func WithExpenseMode(mode ExpenseMode) Option {
	return func(o *Options) {
		o.Expenses = mode
	}
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
