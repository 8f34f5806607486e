package ldapcheck

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/aucos/health-check/pkg/check"
)

// ErrNoHosts is returned when the host list is empty.
var ErrNoHosts = errors.New("no LDAP hosts configured")

// ErrSSLAndTLS is returned when ldaps and StartTLS are both requested.
var ErrSSLAndTLS = errors.New("use_ssl and use_tls cannot both be enabled")

// Check verifies that one of the configured directory hosts accepts a bind.
type Check struct {
	Hosts    []string      // tried in order, first successful bind wins
	Port     int           // default 389
	BaseDN   string        // echoed on success
	Username string        // bind DN, empty for anonymous bind
	Password string
	Timeout  time.Duration // dial and operation timeout (default 5s)
	UseSSL   bool          // ldaps://
	UseTLS   bool          // StartTLS after connecting
	Dialer   Dialer        // injected for testing
}

// Run executes the LDAP connectivity check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: "ldap",
	}

	if len(c.Hosts) == 0 {
		return result.Fail("LDAP connection failed:", ErrNoHosts)
	}
	if c.UseSSL && c.UseTLS {
		return result.Fail("LDAP connection failed:", ErrSSLAndTLS)
	}

	// One detail line per host that could not be bound.
	var errs []error
	for _, host := range c.Hosts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			result.AddDetail(err.Error())
			break
		}
		if err := c.connect(host); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", host, err))
			result.AddDetailf("%s: %v", host, err)
			continue
		}
		return result.Passf("LDAP connection successful (Host: %s, Base DN: %s).",
			strings.Join(c.Hosts, ", "), c.BaseDN)
	}

	result.Err = errors.Join(errs...)
	return result.Fail("LDAP connection failed:", nil)
}

func (c *Check) connect(host string) error {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	port := c.Port
	if port == 0 {
		port = 389
	}

	scheme := "ldap"
	var tlsConfig *tls.Config
	if c.UseSSL || c.UseTLS {
		tlsConfig = &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
	}
	if c.UseSSL {
		scheme = "ldaps"
	}
	url := scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port))

	conn, err := c.Dialer.DialURL(url, timeout, tlsConfig)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if c.UseTLS {
		if err := conn.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if c.Username == "" {
		return conn.UnauthenticatedBind("")
	}
	return conn.Bind(c.Username, c.Password)
}
