package check

import "context"

// Checker is implemented by all check types.
// Each check probes one external dependency and returns a Result
// describing whether it could be reached.
//
// Implementations:
//   - dbcheck.Check: primary PostgreSQL database
//   - ldapcheck.Check: LDAP directory bind
//   - mailcheck.Check: SMTP test message
//   - oraclecheck.Check: optional Oracle database
//   - queuecheck.Check: job queue push
type Checker interface {
	Run(ctx context.Context) Result
}
