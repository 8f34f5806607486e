package healthcheck

import (
	"fmt"

	"github.com/aucos/health-check/pkg/config"
	"github.com/aucos/health-check/pkg/dbcheck"
	"github.com/aucos/health-check/pkg/ldapcheck"
	"github.com/aucos/health-check/pkg/mailcheck"
	"github.com/aucos/health-check/pkg/oraclecheck"
	"github.com/aucos/health-check/pkg/queuecheck"
)

// DefaultProbes wires the production clients for every dependency, in the
// order they are reported: primary database, LDAP, mail, Oracle, queue.
func DefaultProbes(cfg *config.Config) []Probe {
	oracle := &oraclecheck.Check{
		Config: cfg.Secondary,
		Opener: &oraclecheck.GoOraOpener{},
	}

	return []Probe{
		{
			Title: fmt.Sprintf("main database connection (%s)", cfg.Database.Connection),
			Check: &dbcheck.Check{
				Connection: cfg.Database.Connection,
				Database:   cfg.Database.Database,
				Connector: &dbcheck.PgxConnector{
					DSN:            cfg.Database.DSN(),
					ConnectTimeout: cfg.Database.ConnectTimeout,
				},
			},
		},
		{
			Title: "LDAP connection",
			Check: &ldapcheck.Check{
				Hosts:    cfg.LDAP.Hosts,
				Port:     cfg.LDAP.Port,
				BaseDN:   cfg.LDAP.BaseDN,
				Username: cfg.LDAP.Username,
				Password: cfg.LDAP.Password,
				Timeout:  cfg.LDAP.Timeout,
				UseSSL:   cfg.LDAP.UseSSL,
				UseTLS:   cfg.LDAP.UseTLS,
				Dialer:   &ldapcheck.RealDialer{},
			},
		},
		{
			Title: "Mail connection",
			Check: &mailcheck.Check{
				Recipient: cfg.Mail.TestRecipient,
				Sender:    mailcheck.NewSMTPSender(cfg.Mail),
			},
		},
		{
			Title: "Oracle database connection",
			Check: oracle,
			Skip:  oracle.Skip,
		},
		{
			Title: "Queue connection",
			Check: queuecheck.New(cfg.Queue),
		},
	}
}
