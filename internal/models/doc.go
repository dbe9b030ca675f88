// Package models defines the persistent records of the settle-up service.
//
// # Records
//
//   - Group: a shared-expense context with one admin, a member roster,
//     an upfront funding amount and a list of flat bills
//   - Expense: an itemized cost with an explicit per-participant split
//   - Payment: a settle-up payment from one member to another
//
// Balances are never stored. They are derived from these records by the
// ledger package every time they are requested.
//
// # Design Principles
//
// 1. **Plain data**: records carry no behaviour beyond small helpers
// 2. **Exact money**: amounts are decimal values, never floats
// 3. **Avoid circular references**: use ID strings instead of pointers for relationships
// 4. **Immutable payments**: a payment is written once and never updated
package models
