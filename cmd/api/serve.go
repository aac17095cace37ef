package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/bizos-api/internal/application/analytics"
	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/billing"
	"github.com/jhoicas/bizos-api/internal/application/inventory"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	infraai "github.com/jhoicas/bizos-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/bizos-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/bizos-api/internal/interfaces/http"
	"github.com/jhoicas/bizos-api/pkg/jwt"
	"github.com/jhoicas/bizos-api/pkg/password"
)

func newServeCommand(rt *cliEnv) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Arranca la API HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), rt, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "aplicar migraciones antes de arrancar (solo postgres)")
	return cmd
}

func serve(ctx context.Context, rt *cliEnv, migrate bool) error {
	cfg, log := rt.cfg, rt.log
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	in, err := openInfra(ctx, cfg, log, migrate)
	if err != nil {
		return err
	}
	defer in.close()

	issuer, err := jwt.NewIssuer(jwt.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessTTL(),
		RefreshTTL: cfg.JWT.RefreshTTL(),
	})
	if err != nil {
		return err
	}
	policy := authz.DefaultPolicy()
	if err := policy.ParseGrants(cfg.Auth.RBACGrants); err != nil {
		return err
	}

	repos := in.repos
	creds := auth.NewCredentialStore(repos.Users, repos.Clients, password.NewHasher(cfg.Auth.BcryptCost))
	scanner := infraai.NewReceiptScanner(cfg.AI, log)
	deps := httpRouter.RouterDeps{
		Gate:      auth.NewGate(issuer, repos, policy),
		Modules:   usecase.NewModuleService(repos.Companies),
		AuthUC:    auth.NewAuthUseCase(repos, in.tx, creds, issuer, in.revoked, in.publisher, log.Named("auth")),
		UserUC:    usecase.NewUserUseCase(repos.Users, creds, policy),
		CompanyUC: usecase.NewCompanyUseCase(repos.Companies),
		PortalUC:  usecase.NewPortalUseCase(repos, creds),
		BookingUC: usecase.NewBookingUseCase(repos, in.publisher, log.Named("bookings")),
		ReportUC:  usecase.NewReportUseCase(repos, in.tx),
		SocialUC:  usecase.NewSocialUseCase(repos, in.publisher, log.Named("social")),
		Invoices:  billing.NewInvoiceUseCase(repos, in.tx, in.publisher, log.Named("invoicing")),
		Receipts:  billing.NewReceiptUseCase(repos, scanner, in.publisher, log.Named("receipts")),
		PDF:       billing.NewPDFUseCase(repos, infrapdf.NewMarotoPDFGenerator()),
		Inventory: inventory.NewUseCase(repos, in.tx, in.publisher, log.Named("inventory")),
		Dashboard: appanalytics.NewDashboardUseCase(repos),
	}

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SwaggerFile: swaggerFile(cfg.HTTP.SwaggerFile),
	}, log.Named("http"), deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

// swaggerFile desactiva /docs si el archivo no existe (binario desplegado sin docs/).
func swaggerFile(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
