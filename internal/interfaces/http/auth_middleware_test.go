package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	httpiface "github.com/alfonsogomez05081995-dev/fijosdn-api/internal/interfaces/http"
	pkgjwt "github.com/alfonsogomez05081995-dev/fijosdn-api/pkg/jwt"
)

const testJWTSecret = "secreto-de-prueba-no-usar"

// resolverStub mapa email → actor, como lo haría el resolver de identidad.
type resolverStub map[string]*entity.Actor

func (r resolverStub) ResolveRole(_ context.Context, email string) (*entity.Actor, error) {
	return r[email], nil
}

func newProtectedApp(resolver resolverStub) *fiber.App {
	app := fiber.New()
	app.Use(httpiface.AuthMiddleware(testJWTSecret, resolver))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		actor := httpiface.GetActor(c)
		return c.JSON(fiber.Map{"id": actor.ID, "role": actor.Role})
	})
	return app
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := newProtectedApp(resolverStub{})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_HeaderMalformado(t *testing.T) {
	app := newProtectedApp(resolverStub{})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "token-sin-esquema")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := newProtectedApp(resolverStub{})

	// Firmado con otro secreto: la firma no valida.
	token, err := pkgjwt.Generate("otro-secreto", "u1", "elena@fijosdn.test", entity.RoleEmpleado, "test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_PrincipalDesconocido(t *testing.T) {
	// Token válido pero el usuario fue eliminado después de emitirlo.
	app := newProtectedApp(resolverStub{})

	token, err := pkgjwt.Generate(testJWTSecret, "u1", "borrada@fijosdn.test", entity.RoleEmpleado, "test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ResuelveElRolVigente(t *testing.T) {
	// El rol del token dice empleado, pero la base ya dice logística: manda
	// lo resuelto por petición, no lo que viaja en el token.
	app := newProtectedApp(resolverStub{
		"elena@fijosdn.test": {ID: "u1", Role: entity.RoleLogistica, Status: entity.UserStatusActivo},
	})

	token, err := pkgjwt.Generate(testJWTSecret, "u1", "elena@fijosdn.test", entity.RoleEmpleado, "test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u1", body.ID)
	assert.Equal(t, entity.RoleLogistica, body.Role)
}
