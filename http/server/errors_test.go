package server_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, r *server.ErrorRenderer, err error) (int, server.Envelope) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_ = r.Write(c, err)
		return nil
	})

	resp, testErr := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()

	b, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var env server.Envelope
	require.NoError(t, json.Unmarshal(b, &env), string(b))

	return resp.StatusCode, env
}

func TestErrorRendererStatus(t *testing.T) {
	r := server.NewErrorRenderer(true, server.WithStatuses(map[string]int{"BAD_REF": fiber.StatusBadRequest}))

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errx.New("x", errx.WithType(errx.T_Validation)), fiber.StatusBadRequest},
		{"not found", errx.New("x", errx.WithType(errx.T_NotFound)), fiber.StatusNotFound},
		{"conflict", errx.New("x", errx.WithType(errx.T_Conflict)), fiber.StatusConflict},
		{"override", errx.New("x", errx.WithCode("BAD_REF"), errx.WithType(errx.T_NotFound)), fiber.StatusBadRequest},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
		{"fiber error", fiber.ErrMethodNotAllowed, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := render(t, r, tt.err)
			assert.Equal(t, tt.want, status)
			assert.False(t, env.Success)
		})
	}
}

func TestErrorRendererHidesInternals(t *testing.T) {
	err := errx.New("dial tcp 10.0.0.5:3306: connection refused", errx.WithDetails(errx.D{"host": "10.0.0.5"}))

	t.Run("hidden", func(t *testing.T) {
		status, env := render(t, server.NewErrorRenderer(true), err)
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "Internal server error", env.Error)
		assert.Equal(t, "Internal server error", env.Message)
		assert.Empty(t, env.Details)
		assert.Empty(t, env.Trace)
	})

	t.Run("shown", func(t *testing.T) {
		_, env := render(t, server.NewErrorRenderer(false), err)
		assert.Contains(t, env.Error, "connection refused")
		assert.Equal(t, "10.0.0.5", env.Details["host"])
	})
}

func TestErrorRendererMessages(t *testing.T) {
	r := server.NewErrorRenderer(true, server.WithMessages(map[string]string{"GONE": "Variety not found"}))

	_, env := render(t, r, errx.New("variety not found", errx.WithCode("GONE"), errx.WithType(errx.T_NotFound)))
	assert.Equal(t, "Variety not found", env.Message)
	assert.Contains(t, env.Error, "variety not found")
	assert.Equal(t, "GONE", env.Code)

	_, env = render(t, r, errx.New("name is taken", errx.WithCode("TAKEN"), errx.WithType(errx.T_Conflict)))
	assert.Contains(t, env.Message, "name is taken")
}

func TestErrorRendererFailure(t *testing.T) {
	storeErr := errx.New("dial tcp 10.0.0.5:3306: connection refused", errx.WithCode("DB_DOWN"))
	validationErr := errx.New(
		"Validation failed",
		errx.WithCode("VALIDATION_FAILED"),
		errx.WithType(errx.T_Validation),
		errx.WithFields(errx.M{"variety_name": "must be at least 2 characters long"}),
	)

	t.Run("hidden internal cause", func(t *testing.T) {
		f := server.NewErrorRenderer(true).Failure(storeErr)
		assert.Equal(t, "DB_DOWN", f.Code)
		assert.Equal(t, "Internal server error", f.Error)
	})

	t.Run("hidden internal cause with catalog message", func(t *testing.T) {
		r := server.NewErrorRenderer(true, server.WithMessages(map[string]string{"DB_DOWN": "Store unavailable"}))
		assert.Equal(t, "Store unavailable", r.Failure(storeErr).Error)
	})

	t.Run("shown internal cause", func(t *testing.T) {
		assert.Contains(t, server.NewErrorRenderer(false).Failure(storeErr).Error, "connection refused")
	})

	t.Run("client errors keep text and fields", func(t *testing.T) {
		f := server.NewErrorRenderer(true).Failure(validationErr)
		assert.Equal(t, "VALIDATION_FAILED", f.Code)
		assert.Contains(t, f.Error, "Validation failed")
		assert.Equal(t, map[string]string{"variety_name": "must be at least 2 characters long"}, f.Fields)
	})
}
