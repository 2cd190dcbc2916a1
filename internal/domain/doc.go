// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/user, domain/grid,
// domain/audit, domain/actionplan, domain/policy, domain/meeting,
// domain/notification). This root package holds sentinel errors, validation
// and rejection types, the explicit create/update command, and the file
// reference consumed by upload operations.
package domain
