// Package ledger computes group balances for shared expenses.
//
// A group snapshot (admin funding, flat bills, itemized expenses and the
// member roster) goes in; per-member balances come out. Settle-up payments are
// applied on top of computed balances with ApplySettlement. Everything here is
// pure: no I/O, inputs are never mutated, and malformed amounts are coerced to
// zero instead of producing errors.
package ledger
