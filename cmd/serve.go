package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice session as a local JSON API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFiles(); err != nil {
			return err
		}
		return setupLogging(cmd, "info")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serverConfig(cmd)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		srv := server.New(cfg, rt.session, rt.tracker)
		defer srv.Close()

		logging.Logger.WithField("online", rt.generator.Online()).Info("practice session ready")
		return srv.ListenAndServe(cmd.Context())
	},
}

// serverConfig reads MATES_ADDR, MATES_RATE_PER_MINUTE and
// MATES_ALLOWED_ORIGINS; --addr overrides the address.
func serverConfig(cmd *cobra.Command) (server.Config, error) {
	cfg := server.Config{
		Addr:          os.Getenv("MATES_ADDR"),
		RatePerMinute: server.DefaultRatePerMinute,
	}
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		cfg.Addr = a
	}
	if v := os.Getenv("MATES_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid MATES_RATE_PER_MINUTE %q", v)
		}
		cfg.RatePerMinute = n
	}
	if v := os.Getenv("MATES_ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg, nil
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MATES_ADDR, default "+server.DefaultAddr+")")
}
