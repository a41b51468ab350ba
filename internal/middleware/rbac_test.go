package middleware

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/service"
)

type denialRecorder struct {
	mu      sync.Mutex
	actors  []service.AuditActor
	targets []string
}

func (d *denialRecorder) RecordAuthentication(ctx context.Context, email, role string, succeeded bool, actorID *uint, meta service.RequestMeta) error {
	return nil
}

func (d *denialRecorder) RecordLogout(ctx context.Context, actorID uint, email, role string, meta service.RequestMeta) error {
	return nil
}

func (d *denialRecorder) RecordMutation(ctx context.Context, actor service.AuditActor, kind, table string, recordID *uint, before, after interface{}, meta service.RequestMeta) error {
	return nil
}

func (d *denialRecorder) RecordUnauthorizedAccess(ctx context.Context, actor service.AuditActor, resource string, meta service.RequestMeta) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actors = append(d.actors, actor)
	d.targets = append(d.targets, resource)
	return nil
}

func (d *denialRecorder) Close() {}

func setupRBACApp(recorder service.AuditRecorder, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(9))
		c.Locals("user_email", "someone@narxoz.kz")
		c.Locals("user_role", role)
		return c.Next()
	})
	app.Get("/students", RequireRole(recorder, "students", "admin", "teacher"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRoleAllowsPermittedRole(t *testing.T) {
	recorder := &denialRecorder{}
	app := setupRBACApp(recorder, "teacher")

	resp, err := app.Test(httptest.NewRequest("GET", "/students", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Empty(t, recorder.targets)
}

func TestRequireRoleRecordsDenialBeforeRejecting(t *testing.T) {
	recorder := &denialRecorder{}
	app := setupRBACApp(recorder, "student")

	resp, err := app.Test(httptest.NewRequest("GET", "/students", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	require.Equal(t, []string{"students"}, recorder.targets)
	require.Len(t, recorder.actors, 1)
	actor := recorder.actors[0]
	require.Equal(t, "someone@narxoz.kz", actor.Email)
	require.Equal(t, "student", actor.Role)
	require.Equal(t, uint(9), *actor.ID)
}

func TestRequireRoleTreatsMissingRoleAsDenied(t *testing.T) {
	recorder := &denialRecorder{}
	app := fiber.New()
	app.Get("/students", RequireRole(recorder, "students", "admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/students", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Len(t, recorder.actors, 1)
	require.Nil(t, recorder.actors[0].ID)
}
