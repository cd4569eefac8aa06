package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/handler"
	"github.com/noah-isme/storeroom-go-api/internal/service"
)

type mockIssueService struct {
	lastInput service.ProcessIssueInput
	response  dto.IssueResponse
	err       error
}

func (m *mockIssueService) ProcessIssue(_ context.Context, input service.ProcessIssueInput) (dto.IssueResponse, error) {
	m.lastInput = input
	if m.err != nil {
		return dto.IssueResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockIssueService) Get(_ context.Context, id uint) (dto.IssueResponse, error) {
	if m.err != nil {
		return dto.IssueResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockIssueService) List(_ context.Context, page, pageSize int) (dto.IssueListResponse, error) {
	return dto.IssueListResponse{Issues: []dto.IssueResponse{m.response}, Total: 1, Page: 1, PageSize: 20}, nil
}

func decodeResponse(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, out))
}

func newIssueTestApp(svc *mockIssueService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/issues", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(9))
		return c.Next()
	})
	handler.NewIssueHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestIssueHandlerCreateSuccess(t *testing.T) {
	svc := &mockIssueService{response: dto.IssueResponse{ID: 12, TeacherID: 3}}
	app := newIssueTestApp(svc)

	body, err := json.Marshal(map[string]any{
		"teacher_id": 3,
		"items":      map[string]any{"1": 2, "4": "5"},
		"signature":  "data:image/png;base64,stub",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/issues", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool              `json:"success"`
		Data    dto.IssueResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, uint(12), response.Data.ID)

	require.Equal(t, uint(9), svc.lastInput.ActorID)
	require.Equal(t, uint(3), svc.lastInput.TeacherID)
	require.Len(t, svc.lastInput.Lines, 2)
}

func TestIssueHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "empty cart", err: service.ErrCartEmpty, statusCode: fiber.StatusBadRequest},
		{name: "missing signature", err: service.ErrSignatureRequired, statusCode: fiber.StatusBadRequest},
		{name: "bad quantity", err: service.ErrInvalidQuantity, statusCode: fiber.StatusUnprocessableEntity},
		{name: "bad signature", err: service.ErrSignatureInvalid, statusCode: fiber.StatusUnprocessableEntity},
		{name: "unknown teacher", err: service.ErrTeacherNotFound, statusCode: fiber.StatusNotFound},
		{name: "insufficient stock", err: service.ErrInsufficientStock, statusCode: fiber.StatusConflict},
		{name: "generic", err: errors.New("boom"), statusCode: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockIssueService{err: tc.err}
			app := newIssueTestApp(svc)

			body, err := json.Marshal(map[string]any{
				"teacher_id": 1,
				"items":      map[string]any{"1": 1},
				"signature":  "data:image/png;base64,stub",
			})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/issues", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestIssueHandlerRejectsMalformedBody(t *testing.T) {
	svc := &mockIssueService{}
	app := newIssueTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/issues", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
