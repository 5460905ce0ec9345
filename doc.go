// Package moneywell implements the analysis engine of a personal money
// manager. It walks a chronologically ordered ledger of events once and
// incrementally computes running aggregates ("buckets") per account, per
// transaction category, and per tax basis.
//
// The core functionalities include:
//   - Ledger Model: immutable accounts, categories, tax years, and events,
//     each carrying the classification tags the analysis needs.
//   - Event Classification: a pure mapping from an event's account and
//     category classes to its net effect (income, expense, transfer) and,
//     for priced accounts, to its capital-event algorithm.
//   - Capital Event Processing: cost-basis and unit adjustment for splits,
//     rights issues, de-mergers, takeovers, dividends, and disposals, using
//     exact decimal weighted apportionment, with an append-only audit trail
//     of investment analyses and a chargeable-event list for taxable gains.
//   - Bucket Roll-Up: end-of-pass totals production with satellite
//     redistribution, parent accumulation, and relevance pruning, so
//     comparative reports keep rows that went to zero and drop rows that
//     were never active.
//   - Multi-Year Analysis: a segmenting scan that finalizes each fiscal year
//     and seeds the next from its closing buckets.
//
// Persistence, market-data providers, and presentation are collaborators,
// not part of this package: the engine consumes an ordered event stream and
// a price source, and exposes finalized read-only buckets.
//
// This package serves as the foundational logic for the `mwa` command-line
// tool.
package moneywell
