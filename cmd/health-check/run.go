package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aucos/health-check/pkg/config"
	"github.com/aucos/health-check/pkg/healthcheck"
	"github.com/aucos/health-check/pkg/logger"
	"github.com/aucos/health-check/pkg/output"
)

// ConfigEnv names the variable holding an explicit config file path.
const ConfigEnv = "HEALTHCHECK_CONFIG"

// newProbes is replaced in tests.
var newProbes = healthcheck.DefaultProbes

// runHealthCheck loads configuration and runs every probe. Only a
// configuration error produces a non-nil error; check failures are
// reported in the output and never change the exit code.
func runHealthCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(os.Getenv(ConfigEnv))
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Debug().Str("queue", cfg.Queue.Default).Strs("ldap_hosts", cfg.LDAP.Hosts).Msg("configuration loaded")

	runner := &healthcheck.Runner{
		Probes:  newProbes(cfg),
		Printer: output.New(cmd.OutOrStdout()),
		Log:     log,
	}
	runner.Run(cmd.Context())
	return nil
}
