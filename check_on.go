//go:build debugchecks

package pace

// debugChecks promotes internal consistency violations to panics.
const debugChecks = true
