// Package wallet keeps track of a small set of personal accounts.
//
// Each account is shown to the user as a "card": a name, an accent color and
// a current balance, together with the income and the expenses accumulated
// through plus and minus adjustments. The package provides:
//   - Accounts and their ledgers: an append-only, chronological list of
//     transactions, each one a credit ("plus") or a debit ("minus") of a
//     non-negative amount.
//   - Collections: the ordered set of accounts a user works with, notifying
//     subscribers of every mutation so that a user interface can re-render.
//   - Snapshots: a JSON document holding the whole collection, written to and
//     read from any string-keyed storage slot. Income and expenses are never
//     stored, they are replayed from the ledger when a snapshot is restored.
//
// The package has no user interface dependency; the wallet command line tool
// (see the cmd package) and the renderer package are its collaborators.
package wallet
