package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/pkg/jwt"
	"github.com/jhoicas/bizos-api/pkg/password"
)

// newRegisterCompanyCommand alta de empresa + owner desde la terminal, con las mismas
// reglas que POST /auth/register.
func newRegisterCompanyCommand(rt *cliEnv) *cobra.Command {
	var in dto.RegisterRequest
	var migrate bool
	cmd := &cobra.Command{
		Use:   "register-company",
		Short: "Registra una empresa y su usuario owner",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ext, err := openInfra(ctx, rt.cfg, rt.log, migrate)
			if err != nil {
				return err
			}
			defer ext.close()

			issuer, err := jwt.NewIssuer(jwt.Config{
				Secret:     rt.cfg.JWT.Secret,
				Issuer:     rt.cfg.JWT.Issuer,
				AccessTTL:  rt.cfg.JWT.AccessTTL(),
				RefreshTTL: rt.cfg.JWT.RefreshTTL(),
			})
			if err != nil {
				return err
			}
			repos := ext.repos
			creds := auth.NewCredentialStore(repos.Users, repos.Clients, password.NewHasher(rt.cfg.Auth.BcryptCost))
			uc := auth.NewAuthUseCase(repos, ext.tx, creds, issuer, ext.revoked, ext.publisher, rt.log.Named("auth"))

			out, err := uc.Register(ctx, in)
			if err != nil {
				return err
			}
			rt.log.Info().Str("company_id", out.Company.ID).Str("slug", out.Company.Slug).
				Str("owner_id", out.User.ID).Msg("empresa registrada")
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", out.Company.ID, out.Company.Slug, out.User.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.CompanyName, "company", "", "nombre de la empresa")
	f.StringVar(&in.Email, "email", "", "email del owner")
	f.StringVar(&in.Password, "password", "", "password del owner (mínimo 8 caracteres)")
	f.StringVar(&in.FirstName, "first-name", "", "nombre del owner")
	f.StringVar(&in.LastName, "last-name", "", "apellido del owner")
	f.BoolVar(&migrate, "migrate", false, "aplicar migraciones antes de registrar (solo postgres)")
	for _, name := range []string{"company", "email", "password", "first-name", "last-name"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
