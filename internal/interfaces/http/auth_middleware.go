package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
)

// LocalAuthz clave de Locals donde queda el authz.Context de la petición.
const LocalAuthz = "authz"

// Authenticate valida el Bearer token del kind pedido con el Gate y guarda el authz.Context.
// Los handlers leen el alcance de empresa solo desde ahí.
func Authenticate(gate *auth.Gate, kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return respondError(c, err)
		}
		ac, err := gate.Authenticate(c.UserContext(), token, kind)
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalAuthz, ac)
		return c.Next()
	}
}

// OptionalClient acepta peticiones anónimas; si traen Authorization debe ser un token de
// cliente válido.
func OptionalClient(gate *auth.Gate) fiber.Handler {
	required := Authenticate(gate, authz.KindClient)
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		return required(c)
	}
}

// RequirePermission exige el permiso al rol del staff autenticado. Va después de Authenticate.
func RequirePermission(gate *auth.Gate, perm authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gate.Authorize(GetAuthz(c), perm); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

// GetAuthz devuelve el contexto autenticado; vacío (Valid() == false) si no hay.
func GetAuthz(c *fiber.Ctx) authz.Context {
	ac, _ := c.Locals(LocalAuthz).(authz.Context)
	return ac
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrUnauthorized
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrUnauthorized
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	return token, nil
}
