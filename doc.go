// Package bankauth is the user-management core of a banking backend:
// confirmation-token lifecycle plus account-number and transfer
// validation.
//
// Token lifecycle:
//   - Confirmations issues single-use tokens for account activation and
//     password reset, sweeps expired tokens opportunistically on every
//     Consume call, and applies purpose-specific outcome policies. An
//     expired activation link removes the pending registration; the
//     reset branch reports success regardless of token presence.
//
// Validation:
//   - AccountNumberFormat converts loosely formatted account numbers
//     into the canonical spaced form used as the storage key, and mints
//     fresh numbers for new accounts.
//   - TransferValidator runs the read-only receiver and amount checks a
//     transfer form needs, returning field-keyed violations instead of
//     raising.
//
// Persistence is consumed through the TokenStore, AccountStore, and
// UserDirectory contracts; bun-backed implementations ship in the
// repo_*.go files. Rendering, routing, email delivery, and session
// handling stay outside this package.
package bankauth
