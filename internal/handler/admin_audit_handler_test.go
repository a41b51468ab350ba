package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/service"
)

type auditQueryStub struct {
	lastRequest dto.AuditLogQueryRequest
	response    dto.AuditLogListResponse
	err         error
	calls       int
}

func (s *auditQueryStub) Query(ctx context.Context, req dto.AuditLogQueryRequest) (dto.AuditLogListResponse, error) {
	s.calls++
	s.lastRequest = req
	if s.err != nil {
		return dto.AuditLogListResponse{}, s.err
	}
	return s.response, nil
}

func setupAuditViewerApp(stub *auditQueryStub) *fiber.App {
	app := fiber.New()
	h := NewAdminAuditHandler(stub, zerolog.Nop())
	h.Register(app.Group("/admin/audit-logs"))
	return app
}

func TestAdminAuditHandlerAppliesDefaultsAndFilters(t *testing.T) {
	stub := &auditQueryStub{response: dto.AuditLogListResponse{Items: []dto.AuditLogResponse{}}}
	app := setupAuditViewerApp(stub)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/audit-logs?email=bekova&action=update&table=grades&actor_id=4&from=2026-03-01&to=2026-03-02", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := stub.lastRequest
	require.Equal(t, 1, req.Page)
	require.Equal(t, auditViewerPageSize, req.PageSize)
	require.Equal(t, "bekova", req.Email)
	require.Equal(t, "update", req.Action)
	require.Equal(t, "grades", req.TableName)
	require.Equal(t, uint(4), *req.ActorID)
	require.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), req.From.UTC())

	// A bare end date covers the whole day.
	require.Equal(t, 2, req.To.Day())
	require.Equal(t, 23, req.To.Hour())
}

func TestAdminAuditHandlerRejectsMalformedQuery(t *testing.T) {
	stub := &auditQueryStub{}
	app := setupAuditViewerApp(stub)

	for _, target := range []string{
		"/admin/audit-logs?page=abc",
		"/admin/audit-logs?actor_id=-1",
		"/admin/audit-logs?from=yesterday",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, target)
	}
	require.Zero(t, stub.calls)
}

func TestAdminAuditHandlerMapsValidationErrorsTo400(t *testing.T) {
	stub := &auditQueryStub{err: service.ErrInvalidAction}
	app := setupAuditViewerApp(stub)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/audit-logs?action=update", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminAuditHandlerDistinguishesFailureFromEmpty(t *testing.T) {
	failing := &auditQueryStub{err: errors.New("connection reset")}
	app := setupAuditViewerApp(failing)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/audit-logs", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	empty := &auditQueryStub{response: dto.AuditLogListResponse{Items: []dto.AuditLogResponse{}}}
	app = setupAuditViewerApp(empty)

	resp, err = app.Test(httptest.NewRequest("GET", "/admin/audit-logs", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminAuditHandlerFiltersEndpointListsVocabulary(t *testing.T) {
	app := setupAuditViewerApp(&auditQueryStub{})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/audit-logs/filters", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Actions []string `json:"actions"`
			Tables  []string `json:"tables"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Contains(t, body.Data.Actions, "access_denied")
	require.Contains(t, body.Data.Tables, "grades")
}
