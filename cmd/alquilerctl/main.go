// alquilerctl es la CLI de operador: tokens, admin inicial, migraciones de
// auditoría, escaneo de mantenimientos y export de estadísticas.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/alquiler/internal/config"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"

	_ "github.com/dropDatabas3/alquiler/internal/store/adapters/dal"
)

type globals struct {
	configPath string
	envFile    string
	cfg        *config.Config
}

func main() {
	g := &globals{}
	root := &cobra.Command{
		Use:           "alquilerctl",
		Short:         "CLI de operador para el backend de alquileres",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(g.envFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("env file: %w", err)
			}
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			g.cfg = cfg
			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, ServiceName: "alquilerctl"})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", envOr("CONFIG_PATH", "configs/config.yaml"), "ruta del config.yaml")
	root.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "archivo .env a cargar (si existe)")

	root.AddCommand(
		tokenCmd(g),
		seedAdminCmd(g),
		auditMigrateCmd(g),
		maintenanceScanCmd(g),
		exportStatsCmd(g),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
