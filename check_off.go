//go:build !debugchecks

package pace

// debugChecks promotes internal consistency violations to panics.
// Build with -tags debugchecks to enable.
const debugChecks = false
