package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/internal/httpapi"
	"github.com/rise-and-shine/agrovida/internal/variety"
	"github.com/rise-and-shine/agrovida/internal/variety/usecase"
	"github.com/rise-and-shine/agrovida/observability/logger"
	"github.com/rise-and-shine/agrovida/pagination"
	"github.com/rise-and-shine/agrovida/rdb/rdbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type envelope struct {
	Success    bool                 `json:"success"`
	Data       json.RawMessage      `json:"data"`
	Message    string               `json:"message"`
	Error      string               `json:"error"`
	Code       string               `json:"code"`
	Fields     map[string]string    `json:"fields"`
	Count      *int                 `json:"count"`
	Pagination *pagination.Response `json:"pagination"`
}

type testAPI struct {
	t      *testing.T
	app    *fiber.App
	db     *bun.DB
	coffee int64
	cacao  int64
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := rdbtest.New(t)
	cfg := server.Config{
		HideErrorDetails: true,
		Host:             "localhost",
		Port:             8080,
		HandleTimeout:    5 * time.Second,
		BodyLimit:        1 << 20,
		AllowOrigins:     "*",
	}
	srv := httpapi.NewServer(cfg, variety.NewRepository(db), logger.NewNop())

	return &testAPI{
		t:      t,
		app:    srv.App(),
		db:     db,
		coffee: rdbtest.CropType(t, db, "Coffee"),
		cacao:  rdbtest.CropType(t, db, "Cacao"),
	}
}

func (a *testAPI) raw(method, path string, body io.Reader) (int, []byte) {
	a.t.Helper()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)

	return resp.StatusCode, b
}

func (a *testAPI) do(method, path string, body any) (int, envelope) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(b)
	}

	status, b := a.raw(method, path, reader)

	var env envelope
	require.NoError(a.t, json.Unmarshal(b, &env), string(b))

	return status, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestCreateThenGet(t *testing.T) {
	a := newTestAPI(t)

	status, env := a.do(fiber.MethodPost, "/api/varieties", map[string]any{
		"variety_name": "Criollo",
		"crop_type_id": a.cacao,
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Variety created successfully", env.Message)

	created := decode[variety.Variety](t, env.Data)
	require.NotZero(t, created.ID)
	assert.Equal(t, "Cacao", created.CropTypeName)

	status, env = a.do(fiber.MethodGet, fmt.Sprintf("/api/varieties/%d", created.ID), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, created, decode[variety.Variety](t, env.Data))
}

func TestCreateFailures(t *testing.T) {
	a := newTestAPI(t)
	rdbtest.Variety(t, a.db, "Typica", a.coffee)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "short name",
			body:       map[string]any{"variety_name": " A ", "crop_type_id": a.coffee},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
			wantMsg:    "Validation failed",
		},
		{
			name:       "missing crop type id",
			body:       map[string]any{"variety_name": "Geisha"},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
			wantMsg:    "Validation failed",
		},
		{
			name:       "unknown crop type",
			body:       map[string]any{"variety_name": "Geisha", "crop_type_id": 999},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   variety.CodeCropTypeNotFound,
			wantMsg:    "Crop type does not exist",
		},
		{
			name:       "duplicate",
			body:       map[string]any{"variety_name": "Typica", "crop_type_id": a.coffee},
			wantStatus: fiber.StatusConflict,
			wantCode:   variety.CodeVarietyAlreadyExists,
			wantMsg:    "Variety already exists for this crop type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := a.do(fiber.MethodPost, "/api/varieties", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}

	t.Run("field errors are keyed by json name", func(t *testing.T) {
		_, env := a.do(fiber.MethodPost, "/api/varieties", map[string]any{"variety_name": "x"})
		assert.Contains(t, env.Fields, "variety_name")
		assert.Contains(t, env.Fields, "crop_type_id")
	})

	t.Run("malformed json", func(t *testing.T) {
		status, b := a.raw(fiber.MethodPost, "/api/varieties", strings.NewReader("{"))
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, string(b), "INVALID_JSON_BODY")
	})
}

func TestGet(t *testing.T) {
	a := newTestAPI(t)

	status, env := a.do(fiber.MethodGet, "/api/varieties/4242", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Variety not found", env.Message)

	status, env = a.do(fiber.MethodGet, "/api/varieties/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PATH_PARAMS", env.Code)
}

func TestListEndpoints(t *testing.T) {
	a := newTestAPI(t)
	rdbtest.Variety(t, a.db, "Typica", a.coffee)
	rdbtest.Variety(t, a.db, "Bourbon", a.coffee)
	rdbtest.Variety(t, a.db, "Criollo", a.cacao)

	t.Run("all", func(t *testing.T) {
		status, env := a.do(fiber.MethodGet, "/api/varieties", nil)
		require.Equal(t, fiber.StatusOK, status)
		require.NotNil(t, env.Count)
		assert.Equal(t, 3, *env.Count)
		assert.Len(t, decode[[]variety.Variety](t, env.Data), 3)
	})

	t.Run("by crop type", func(t *testing.T) {
		status, env := a.do(fiber.MethodGet, fmt.Sprintf("/api/varieties/crop-type/%d", a.coffee), nil)
		require.Equal(t, fiber.StatusOK, status)
		items := decode[[]variety.Variety](t, env.Data)
		require.Len(t, items, 2)
		assert.Equal(t, "Bourbon", items[0].Name)
		assert.Equal(t, 2, *env.Count)
	})

	t.Run("crop types", func(t *testing.T) {
		status, env := a.do(fiber.MethodGet, "/api/crop-types", nil)
		require.Equal(t, fiber.StatusOK, status)
		types := decode[[]variety.CropType](t, env.Data)
		require.Len(t, types, 2)
		assert.Equal(t, "Cacao", types[0].Name)
	})

	t.Run("stats", func(t *testing.T) {
		status, env := a.do(fiber.MethodGet, "/api/varieties/stats", nil)
		require.Equal(t, fiber.StatusOK, status)
		stats := decode[variety.Statistics](t, env.Data)
		assert.Equal(t, int64(3), stats.Overview.TotalVarieties)
		assert.Equal(t, int64(2), stats.Overview.TotalCropTypes)
		assert.InDelta(t, 1.5, stats.Overview.AvgVarietiesPerCrop, 1e-9)
		assert.Equal(t, "Coffee", stats.ByCropType[0].CropTypeName)
	})
}

func TestSearch(t *testing.T) {
	a := newTestAPI(t)
	for i := range 12 {
		rdbtest.Variety(t, a.db, fmt.Sprintf("Line %02d", i), a.coffee)
	}
	rdbtest.Variety(t, a.db, "Criollo", a.cacao)

	t.Run("defaults to page 1 of 10", func(t *testing.T) {
		status, env := a.do(fiber.MethodGet, "/api/varieties/search", nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, &pagination.Response{Page: 1, Limit: 10, Total: 13, Pages: 2}, env.Pagination)
		assert.Len(t, decode[[]variety.Variety](t, env.Data), 10)
	})

	t.Run("filters, sorts and pages", func(t *testing.T) {
		status, env := a.do(fiber.MethodGet,
			fmt.Sprintf("/api/varieties/search?name=line&crop_type=%d&page=3&limit=5&sort_by=variety_name&sort_order=desc", a.coffee), nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, &pagination.Response{Page: 3, Limit: 5, Total: 12, Pages: 3}, env.Pagination)

		items := decode[[]variety.Variety](t, env.Data)
		require.Len(t, items, 2)
		assert.Equal(t, "Line 01", items[0].Name)
		assert.Equal(t, "Line 00", items[1].Name)
	})

	t.Run("unsafe sort field is ignored", func(t *testing.T) {
		status, env := a.do(fiber.MethodGet,
			"/api/varieties/search?limit=1&sort_by=%27%3B%20DROP%20TABLE%20varieties%3B%20--", nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "Criollo", decode[[]variety.Variety](t, env.Data)[0].Name)
		assert.Equal(t, int64(13), env.Pagination.Total)
	})

	t.Run("non numeric page", func(t *testing.T) {
		status, env := a.do(fiber.MethodGet, "/api/varieties/search?page=x", nil)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "INVALID_QUERY_PARAMS", env.Code)
	})
}

func TestUpdate(t *testing.T) {
	a := newTestAPI(t)
	typica := rdbtest.Variety(t, a.db, "Typica", a.coffee)
	bourbon := rdbtest.Variety(t, a.db, "Bourbon", a.coffee)

	status, env := a.do(fiber.MethodPut, fmt.Sprintf("/api/varieties/%d", typica),
		map[string]any{"variety_name": "Typica", "crop_type_id": a.coffee})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Variety updated successfully", env.Message)

	status, env = a.do(fiber.MethodPut, fmt.Sprintf("/api/varieties/%d", bourbon),
		map[string]any{"variety_name": "Typica", "crop_type_id": a.coffee})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, variety.CodeVarietyAlreadyExists, env.Code)

	status, _ = a.do(fiber.MethodPut, "/api/varieties/999",
		map[string]any{"variety_name": "Ghost", "crop_type_id": a.coffee})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDelete(t *testing.T) {
	a := newTestAPI(t)
	typica := rdbtest.Variety(t, a.db, "Typica", a.coffee)
	bourbon := rdbtest.Variety(t, a.db, "Bourbon", a.coffee)
	farm := rdbtest.Farm(t, a.db, "La Palma", "Nariño")
	rdbtest.FarmCrop(t, a.db, farm, a.coffee, bourbon, 8, true)

	status, env := a.do(fiber.MethodDelete, fmt.Sprintf("/api/varieties/%d", typica), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Variety deleted successfully", env.Message)

	status, _ = a.do(fiber.MethodGet, fmt.Sprintf("/api/varieties/%d", typica), nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = a.do(fiber.MethodDelete, fmt.Sprintf("/api/varieties/%d", bourbon), nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, variety.CodeVarietyInUse, env.Code)

	status, _ = a.do(fiber.MethodGet, fmt.Sprintf("/api/varieties/%d", bourbon), nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestBulk(t *testing.T) {
	a := newTestAPI(t)

	t.Run("rejects empty or non list bodies", func(t *testing.T) {
		for _, tc := range []struct {
			method string
			body   string
		}{
			{fiber.MethodPost, `{"varieties": []}`},
			{fiber.MethodPost, `{}`},
			{fiber.MethodPut, `{"varieties": {"variety_name": "x"}}`},
			{fiber.MethodDelete, `{"ids": "1,2"}`},
			{fiber.MethodDelete, `{"ids": []}`},
		} {
			status, _ := a.raw(tc.method, "/api/varieties/bulk", strings.NewReader(tc.body))
			assert.Equal(t, fiber.StatusBadRequest, status, tc.method+" "+tc.body)
		}
	})

	var typicaID int64

	t.Run("create collects per item failures", func(t *testing.T) {
		status, env := a.do(fiber.MethodPost, "/api/varieties/bulk", map[string]any{
			"varieties": []map[string]any{
				{"variety_name": "Typica", "crop_type_id": a.coffee},
				{"variety_name": "", "crop_type_id": a.coffee},
			},
		})
		require.Equal(t, fiber.StatusCreated, status)
		assert.Equal(t, "1 varieties created successfully", env.Message)

		out := decode[usecase.CreateBulkOutput](t, env.Data)
		assert.Equal(t, 1, out.Created)
		assert.Equal(t, 1, out.Skipped)
		require.Len(t, out.Errors, 1)
		assert.Equal(t, 1, out.Errors[0].Index)
		assert.Equal(t, "VALIDATION_FAILED", out.Errors[0].Code)

		v, err := variety.NewRepository(a.db).FindByCropType(context.Background(), a.coffee)
		require.NoError(t, err)
		require.Len(t, v, 1)
		typicaID = v[0].ID
	})

	t.Run("update", func(t *testing.T) {
		status, env := a.do(fiber.MethodPut, "/api/varieties/bulk", map[string]any{
			"varieties": []map[string]any{
				{"variety_id": typicaID, "variety_name": "Typica Roja", "crop_type_id": a.coffee},
				{"variety_name": "No Id", "crop_type_id": a.coffee},
			},
		})
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "Bulk update completed", env.Message)

		out := decode[usecase.UpdateBulkOutput](t, env.Data)
		assert.Equal(t, 1, out.Updated)
		assert.Equal(t, 1, out.Failed)
		require.Len(t, out.Errors, 1)
		assert.Equal(t, "VALIDATION_FAILED", out.Errors[0].Code)
		assert.Contains(t, out.Errors[0].Fields, "variety_id")
	})

	t.Run("delete", func(t *testing.T) {
		status, env := a.do(fiber.MethodDelete, "/api/varieties/bulk", map[string]any{
			"ids": []int64{typicaID, 9999},
		})
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "1 varieties deleted successfully", env.Message)

		out := decode[usecase.DeleteBulkOutput](t, env.Data)
		assert.Equal(t, 1, out.Deleted)
		assert.Equal(t, 1, out.Failed)
		assert.Equal(t, variety.CodeVarietyNotFound, out.Errors[0].Code)
	})
}

func TestBulkMixedItems(t *testing.T) {
	a := newTestAPI(t)

	t.Run("create keeps going past a mistyped item", func(t *testing.T) {
		body := fmt.Sprintf(
			`{"varieties":[{"variety_name":"Bourbon","crop_type_id":"%d"},{"variety_name":"Caturra","crop_type_id":%d},{"variety_name":"Pacas","crop_type_id":[1]}]}`,
			a.coffee, a.coffee,
		)
		status, b := a.raw(fiber.MethodPost, "/api/varieties/bulk", strings.NewReader(body))
		require.Equal(t, fiber.StatusCreated, status, string(b))

		var env envelope
		require.NoError(t, json.Unmarshal(b, &env))
		out := decode[usecase.CreateBulkOutput](t, env.Data)
		assert.Equal(t, 2, out.Created)
		assert.Equal(t, 1, out.Skipped)
		require.Len(t, out.Errors, 1)
		assert.Equal(t, 2, out.Errors[0].Index)
		assert.Equal(t, "VALIDATION_FAILED", out.Errors[0].Code)
		assert.Contains(t, out.Errors[0].Fields, "crop_type_id")
		assert.JSONEq(t, `{"variety_name":"Pacas","crop_type_id":[1]}`, string(out.Errors[0].Input))
	})

	t.Run("delete keeps going past a non numeric id", func(t *testing.T) {
		caturra := rdbtest.Variety(t, a.db, "Caturra Rojo", a.coffee)

		status, b := a.raw(fiber.MethodDelete, "/api/varieties/bulk", strings.NewReader(fmt.Sprintf(`{"ids":[%d,"x"]}`, caturra)))
		require.Equal(t, fiber.StatusOK, status, string(b))

		var env envelope
		require.NoError(t, json.Unmarshal(b, &env))
		out := decode[usecase.DeleteBulkOutput](t, env.Data)
		assert.Equal(t, 1, out.Deleted)
		assert.Equal(t, 1, out.Failed)
		require.Len(t, out.Errors, 1)
		assert.Equal(t, 1, out.Errors[0].Index)
		assert.Equal(t, "VALIDATION_FAILED", out.Errors[0].Code)
		assert.Contains(t, out.Errors[0].Fields, "id")
	})
}

func TestBulkHidesStoreFailures(t *testing.T) {
	a := newTestAPI(t)
	_, err := a.db.ExecContext(context.Background(), "ALTER TABLE varieties RENAME TO varieties_archived")
	require.NoError(t, err)

	status, env := a.do(fiber.MethodGet, "/api/varieties", nil)
	require.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", env.Error)

	status, env = a.do(fiber.MethodPost, "/api/varieties/bulk", map[string]any{
		"varieties": []map[string]any{{"variety_name": "Typica", "crop_type_id": a.coffee}},
	})
	require.Equal(t, fiber.StatusCreated, status)

	out := decode[usecase.CreateBulkOutput](t, env.Data)
	assert.Equal(t, 0, out.Created)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Internal server error", out.Errors[0].Error)
	assert.NotContains(t, string(env.Data), "varieties_archived")
	assert.NotContains(t, string(env.Data), "no such table")
}

func TestSiteRoutes(t *testing.T) {
	a := newTestAPI(t)

	t.Run("health", func(t *testing.T) {
		status, b := a.raw(fiber.MethodGet, "/api/health", nil)
		require.Equal(t, fiber.StatusOK, status)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(b, &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "AgroVida API is running", resp["message"])
		assert.NotEmpty(t, resp["timestamp"])
	})

	t.Run("dashboard", func(t *testing.T) {
		status, b := a.raw(fiber.MethodGet, "/", nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, string(b), "<title>AgroVida")

		status, _ = a.raw(fiber.MethodGet, "/app.js", nil)
		assert.Equal(t, fiber.StatusOK, status)
	})

	for _, path := range []string{"/api/unknown", "/nope.html"} {
		t.Run("unknown "+path, func(t *testing.T) {
			status, env := a.do(fiber.MethodGet, path, nil)
			assert.Equal(t, fiber.StatusNotFound, status)
			assert.False(t, env.Success)
			assert.Equal(t, "Route not found", env.Message)
		})
	}
}
