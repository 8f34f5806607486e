package ldapcheck

import (
	"crypto/tls"
	"net"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// Conn is the subset of an LDAP connection used by the check.
type Conn interface {
	StartTLS(config *tls.Config) error
	Bind(username, password string) error
	UnauthenticatedBind(username string) error
	Close() error
}

// Dialer abstracts LDAP dialing for testability.
type Dialer interface {
	DialURL(url string, timeout time.Duration, tlsConfig *tls.Config) (Conn, error)
}

// RealDialer dials with go-ldap.
type RealDialer struct{}

// DialURL opens a connection to an ldap:// or ldaps:// URL.
func (d *RealDialer) DialURL(url string, timeout time.Duration, tlsConfig *tls.Config) (Conn, error) {
	opts := []ldap.DialOpt{ldap.DialWithDialer(&net.Dialer{Timeout: timeout})}
	if tlsConfig != nil {
		opts = append(opts, ldap.DialWithTLSConfig(tlsConfig))
	}

	conn, err := ldap.DialURL(url, opts...)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		conn.SetTimeout(timeout)
	}
	return &realConn{conn: conn}, nil
}

type realConn struct {
	conn *ldap.Conn
}

func (c *realConn) StartTLS(config *tls.Config) error { return c.conn.StartTLS(config) }

func (c *realConn) Bind(username, password string) error { return c.conn.Bind(username, password) }

func (c *realConn) UnauthenticatedBind(username string) error {
	return c.conn.UnauthenticatedBind(username)
}

func (c *realConn) Close() error {
	c.conn.Close()
	return nil
}
