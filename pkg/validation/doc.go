// Package validation provides the Phone constraint and its validator. Values
// are parsed with the numbering-plan utility; anything that fails to parse or
// does not match the requested number type is reported as a Violation, never
// as an error.
package validation
