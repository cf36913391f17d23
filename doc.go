// Package indexa normalizes and projects the monetary value of recurring
// payment obligations across time, in an economy where both currency
// exchange rates and inflation move quickly.
//
// The core functionalities include:
//   - Rate Resolution: Looking up historical USD sell rates with two distinct
//     policies (best-available market data, and a bounded backward search
//     used by import paths), with a memoizing cache.
//   - Currency Conversion: Bidirectional ARS/USD conversion on top of the
//     resolved rates.
//   - Inflation Normalization: Rebuilding a cumulative CPI index curve from
//     monthly percentage changes, and rebasing historical amounts to
//     present-value terms.
//   - Time-Series Analysis: Bucketing expense series by granularity, with
//     heatmap, seasonality and latest-vs-previous comparative indicators.
//   - Obligation Projection: Simulating future obligations month by month
//     under per-obligation adjustment rules, recurrence frequencies and a
//     user-supplied currency/inflation scenario.
//
// All arithmetic is carried on decimal values end to end; compounding an
// index curve over many periods on binary floats accumulates visible error.
//
// Persistence is deliberately out of scope: the engine consumes narrow
// collaborator interfaces (QuoteSource, CPISource, AmountSource,
// ObligationSource) that the store subpackage implements over SQLite and
// MemoryStore implements in memory.
//
// This package serves as the foundational logic for the `idx` command-line
// tool.
package indexa
