package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "health-check",
	Short: "Health check of different external services",
	Long: `Probes the primary database, the LDAP directory, the mail transport,
the optional Oracle database and the job queue, one after another, and
reports the outcome of each. Failed checks are reported, not fatal: the
command exits 0 once every check has run. It exits 1 only when the
configuration cannot be loaded or is invalid, in which case no check runs.

Configuration is read from health-check.yaml (in ., ./config or
/etc/health-check, or the file named by HEALTHCHECK_CONFIG) and from
HEALTHCHECK_* environment variables.`,
	Version:      Version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHealthCheck,
}
