// Package peatrack automates the follow-up of a personal, monthly-funded
// stock savings plan. It is designed to run unattended once a day and keep
// its whole state in two small, human-readable CSV files.
//
// The core functionalities include:
//   - Contribution Plan: A fixed monthly amount per tracked asset, executed
//     automatically once per calendar month as soon as quotes are available
//     on or after the purchase day.
//   - Position Ledger: The durable record of quantities and invested capital
//     per asset, updated by the plan and persisted after every change.
//   - History Log: One snapshot per day of the aggregate portfolio state and
//     the day's closing prices, de-duplicated by date.
//   - Performance Metrics: Annualized growth, maximum drawdown, annualized
//     volatility and excess return over a benchmark index, computed from the
//     history log.
//   - Reporting: A markdown review rendered to the terminal, an HTML email
//     with an inline performance chart, and a multi-panel HTML dashboard
//     suitable for static publishing.
//
// This package serves as the foundational logic for the `pea` command-line
// tool, ensuring that a failed report can never lose a day's data: state is
// persisted before anything user-facing runs.
package peatrack
