package phonenumber

import "fmt"

// ParseError reports a number the numbering library could not parse. It
// unwraps to the library error so callers can match specific failures.
type ParseError struct {
	Input  string
	Region string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("phonenumber: parse %q (region %s)", e.Input, e.Region)
	}
	return fmt.Sprintf("phonenumber: parse %q (region %s): %v", e.Input, e.Region, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
