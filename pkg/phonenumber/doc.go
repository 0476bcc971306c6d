// Package phonenumber is the seam between go-phoneform and the numbering-plan
// library (github.com/nyaruka/phonenumbers). Every other package parses,
// formats and classifies numbers through the Util interface so tests and
// callers can swap the implementation, while Default exposes the read-only
// process-wide instance used when nothing is injected.
package phonenumber
