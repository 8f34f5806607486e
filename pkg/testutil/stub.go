package testutil

import (
	"context"
	"errors"
	"strings"

	"github.com/aucos/health-check/pkg/check"
)

// StubCheck is a test double for check.Checker.
type StubCheck struct {
	Result  check.Result
	PanicOn bool
	Calls   int
}

// Run returns the canned result.
func (s *StubCheck) Run(context.Context) check.Result {
	s.Calls++
	if s.PanicOn {
		panic("stub check exploded")
	}
	return s.Result
}

// Passing returns a stub that succeeds with message.
func Passing(message string) *StubCheck {
	return &StubCheck{Result: check.Result{Status: check.StatusOK, Message: message}}
}

// Failing returns a stub that fails with message and the error text as detail.
func Failing(message, errText string) *StubCheck {
	r := check.Result{}
	r.Fail(message, errors.New(errText))
	return &StubCheck{Result: r}
}

// ContainsDetail checks if any detail string contains the given substring.
func ContainsDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}
