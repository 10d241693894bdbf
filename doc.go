// Package folio reconstructs daily portfolio state from a normalized
// brokerage transaction ledger and derives valuation, cash-flow and
// performance analytics from it.
//
// The package is organized around a small number of pure computations:
//
//   - Classify maps a raw transaction row to a closed Category.
//   - HoldingsHistory replays the ledger along a daily calendar into
//     per-day snapshots of positions and cash.
//   - MergePrices combines market closes, transaction-implied prices and
//     manual overrides into one forward-filled daily price table.
//   - PortfolioValues multiplies holdings by prices into a daily value series.
//   - DailyCashFlows extracts external capital movements.
//   - CostBasis replays the ledger through FIFO lots into current holdings
//     and realized sale records.
//   - PerformanceMetrics computes money-weighted (XIRR) and time-weighted
//     (TWR) returns over Lifetime, 1Y and YTD windows.
//
// Every computation is a function of its inputs only. Callers may run them
// concurrently for different account views; the external quote fetch is the
// only slow collaborator and should be performed once per batch.
package folio
