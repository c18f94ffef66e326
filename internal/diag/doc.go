// Package diag defines the diagnostic model shared by the rule engine and
// the CLI layers.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced by
//     structural rules.
//   - Offer light-weight utilities (Reporter, Bag) that let rules emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag performs no formatting, IO, or CLI integration. Rendering
// lives in internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record: severity (Info, Warning, Error), a
// compact rule Code with a stable string form (see codes.go), a short
// actionable message, and a 1-based line number in the input document.
//
// Rule codes double as the idempotence key for remediation markers: the
// marker text embeds Code.ID(), so repeat runs recognise an already flagged
// line even if the message wording changes between versions.
//
// Keep the model deterministic: diagnostics are sorted and deduplicated by
// position and code so that output is byte-stable across runs.
package diag
