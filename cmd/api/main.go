package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/jhoicas/bizos-api/docs"
	"github.com/jhoicas/bizos-api/pkg/config"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

// @title                       BizOS API
// @version                     1.0
// @description                 API del back office multi-empresa: reservas, facturación, inventario, portal de clientes, reportes y redes sociales.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <access_token>

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliEnv configuración y logger cargados antes de cada subcomando.
type cliEnv struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCommand() *cobra.Command {
	rt := &cliEnv{}
	root := &cobra.Command{
		Use:           "bizos-api",
		Short:         "Back office multi-empresa: API HTTP y utilidades de administración",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			rt.cfg = cfg
			rt.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			return nil
		},
	}
	root.AddCommand(newServeCommand(rt), newRegisterCompanyCommand(rt))
	return root
}
