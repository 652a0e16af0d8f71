// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/user, domain/address,
// domain/signup). Each of those exposes a sealed value that can only be
// obtained through its package's TryCreate. This root package holds the
// sentinel errors shared by all of them.
package domain
