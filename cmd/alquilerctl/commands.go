package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/alquiler/internal/alerts"
	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/bootstrap"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/email"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
	"github.com/dropDatabas3/alquiler/internal/reports"
	"github.com/dropDatabas3/alquiler/internal/store"
	"github.com/dropDatabas3/alquiler/internal/util/atomicwrite"
)

// operator es el principal con el que corre la CLI.
var operator = &authz.Principal{SubjectID: "alquilerctl", IsAdmin: true, IsActive: true}

func openStore(ctx context.Context, g *globals) (store.AdapterConnection, error) {
	c := g.cfg.Storage
	return store.OpenAdapter(ctx, store.AdapterConfig{
		Name:          c.Driver,
		URI:           c.Mongo.URI,
		Database:      c.Mongo.Database,
		Timeout:       c.Mongo.Timeout,
		EnsureIndexes: c.Mongo.EnsureIndexes,
	})
}

func newEngine(conn store.AdapterConnection, maxPage int) *reports.Engine {
	return reports.New(reports.Deps{
		Reports:     conn.Reports(),
		Apartments:  conn.Apartments(),
		Guard:       authz.NewGuard(conn.Contracts()),
		MaxPageSize: maxPage,
	})
}

func tokenCmd(g *globals) *cobra.Command {
	var userID, userEmail string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un access token para un usuario existente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" && userEmail == "" {
				return fmt.Errorf("--user-id o --email es requerido")
			}
			ctx := cmd.Context()
			conn, err := openStore(ctx, g)
			if err != nil {
				return err
			}
			defer conn.Close()

			var u *repository.User
			if userID != "" {
				u, err = conn.Users().GetByID(ctx, userID)
			} else {
				u, err = conn.Users().GetByEmail(ctx, userEmail)
			}
			if err != nil {
				return fmt.Errorf("buscar usuario: %w", err)
			}

			if ttl <= 0 {
				ttl = g.cfg.Auth.TokenTTL
			}
			iss, err := jwtx.NewIssuer(g.cfg.Auth.Issuer, []byte(g.cfg.Auth.JWTSecret), ttl)
			if err != nil {
				return err
			}
			tok, exp, err := iss.IssueAccess(jwtx.Subject{
				ID:       u.ID,
				FullName: u.FullName,
				Email:    u.Email,
				Active:   u.IsActive,
				Admin:    u.IsAdmin,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expira: %s\n", exp.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "id del usuario")
	cmd.Flags().StringVar(&userEmail, "email", "", "email del usuario (alternativa a --user-id)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "vigencia (default auth.token_ttl)")
	return cmd
}

func seedAdminCmd(g *globals) *cobra.Command {
	cfg := bootstrap.AdminConfig{}
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Crea o promueve el usuario administrador",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := openStore(ctx, g)
			if err != nil {
				return err
			}
			defer conn.Close()

			cfg.Users = conn.Users()
			cfg.Out = cmd.OutOrStdout()
			_, err = bootstrap.EnsureAdmin(ctx, cfg)
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.Email, "email", os.Getenv("ADMIN_EMAIL"), "email del admin (env ADMIN_EMAIL)")
	cmd.Flags().StringVar(&cfg.Password, "password", os.Getenv("ADMIN_PASSWORD"), "password (env ADMIN_PASSWORD); vacío = prompt")
	cmd.Flags().StringVar(&cfg.FullName, "name", "", "nombre completo")
	return cmd
}

func auditMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "audit-migrate",
		Short: "Aplica las migraciones de la tabla de auditoría (postgres)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.cfg.Audit.DSN == "" {
				return fmt.Errorf("audit.dsn (AUDIT_DSN) no configurado")
			}
			sink, err := audit.NewPGSink(cmd.Context(), g.cfg.Audit.DSN)
			if err != nil {
				return err
			}
			defer sink.Close()
			n, err := sink.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migraciones aplicadas: %d\n", n)
			return nil
		},
	}
}

func maintenanceScanCmd(g *globals) *cobra.Command {
	var notify bool
	cmd := &cobra.Command{
		Use:   "maintenance-scan",
		Short: "Revisa todos los apartamentos activos contra el umbral de mantenimientos pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := openStore(ctx, g)
			if err != nil {
				return err
			}
			defer conn.Close()

			sc := &alerts.Scanner{
				Apartments: conn.Apartments(),
				Checker:    newEngine(conn, g.cfg.Reports.MaxPageSize),
				Recipients: g.cfg.Alerts.Recipients,
				PageSize:   g.cfg.Reports.MaxPageSize,
			}
			if notify {
				if g.cfg.SMTP.Host == "" {
					return fmt.Errorf("--notify requiere smtp.host (SMTP_HOST)")
				}
				sc.Sender = email.NewSMTPSender(email.Config{
					Host:               g.cfg.SMTP.Host,
					Port:               g.cfg.SMTP.Port,
					From:               g.cfg.SMTP.From,
					Username:           g.cfg.SMTP.Username,
					Password:           g.cfg.SMTP.Password,
					TLSMode:            g.cfg.SMTP.TLS,
					InsecureSkipVerify: g.cfg.SMTP.InsecureSkipVerify,
				})
			}

			results, err := sc.Scan(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%s\t%s\t%d pendientes\n", r.ApartmentID, r.Number, r.PendingCount)
			}
			fmt.Fprintf(out, "apartamentos sobre el umbral: %d\n", len(results))
			if notify {
				sent, err := sc.Notify(ctx, results)
				if err != nil {
					return fmt.Errorf("notify: %w", err)
				}
				fmt.Fprintf(out, "notificación enviada: %t\n", sent)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&notify, "notify", false, "envía el resumen por email a alerts.recipients")
	return cmd
}

func exportStatsCmd(g *globals) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-stats",
		Short: "Exporta las estadísticas de pagos de todos los contratos a xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := openStore(ctx, g)
			if err != nil {
				return err
			}
			defer conn.Close()

			engine := newEngine(conn, g.cfg.Reports.MaxPageSize)
			size := g.cfg.Reports.MaxPageSize
			if size <= 0 || size > repository.MaxLimit {
				size = repository.MaxLimit
			}
			var all []repository.PaymentStats
			for skip := 0; ; skip += size {
				page, err := engine.PaymentStats(ctx, operator, repository.Page{Skip: skip, Limit: size})
				if err != nil {
					return err
				}
				if len(page) == 0 {
					break
				}
				all = append(all, page...)
			}

			err = atomicwrite.WriteFunc(output, 0o644, func(w io.Writer) error {
				return reports.WriteStatsXLSX(w, all)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d contratos exportados a %s\n", len(all), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "payment_stats.xlsx", "archivo de salida")
	return cmd
}
