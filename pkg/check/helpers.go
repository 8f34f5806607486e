package check

import (
	"errors"
	"fmt"
)

// Pass sets the result to OK with a headline message.
func (r *Result) Pass(message string) Result {
	r.Status = StatusOK
	r.Message = message
	return *r
}

// Passf sets the result to OK with a formatted headline message.
func (r *Result) Passf(format string, args ...any) Result {
	return r.Pass(fmt.Sprintf(format, args...))
}

// Fail sets the result to failed status. The error text becomes a detail
// line. A nil err keeps any Err and details already recorded.
func (r *Result) Fail(message string, err error) Result {
	r.Status = StatusFail
	r.Message = message
	if err != nil {
		r.Err = err
		r.Details = append(r.Details, err.Error())
	}
	return *r
}

// Failf sets the result to failed status with a formatted message and no
// detail line. Used for failures that never reached the backend.
func (r *Result) Failf(format string, args ...any) Result {
	msg := fmt.Sprintf(format, args...)
	r.Status = StatusFail
	r.Message = msg
	r.Err = errors.New(msg)
	return *r
}

// Skip marks the result as not attempted.
func (r *Result) Skip(reason string) Result {
	r.Status = StatusSkip
	r.Message = reason
	return *r
}

// AddDetail appends a detail line to the result.
func (r *Result) AddDetail(detail string) *Result {
	r.Details = append(r.Details, detail)
	return r
}

// AddDetailf appends a formatted detail line to the result.
func (r *Result) AddDetailf(format string, args ...any) *Result {
	return r.AddDetail(fmt.Sprintf(format, args...))
}
