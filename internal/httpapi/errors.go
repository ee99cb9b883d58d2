package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/http/server/forward"
	"github.com/rise-and-shine/agrovida/http/server/middleware"
	"github.com/rise-and-shine/agrovida/internal/variety"
	"github.com/rise-and-shine/agrovida/val"
)

const CodeRouteNotFound = "ROUTE_NOT_FOUND"

var messages = map[string]string{
	val.CodeValidationFailed:         "Validation failed",
	forward.CodeInvalidContentType:   "Content-Type must be application/json",
	forward.CodeInvalidJSONBody:      "Invalid JSON body",
	forward.CodeInvalidQueryParams:   "Invalid query parameters",
	forward.CodeInvalidPathParams:    "Invalid path parameters",
	variety.CodeVarietyNotFound:      "Variety not found",
	variety.CodeCropTypeNotFound:     "Crop type does not exist",
	variety.CodeVarietyAlreadyExists: "Variety already exists for this crop type",
	variety.CodeVarietyInUse:         "Cannot delete variety: it is being used in farm crops",
	CodeRouteNotFound:                "Route not found",
	middleware.CodeRequestTimeout:    "Request timed out",
}

// A missing crop type on a write is a bad reference in the request,
// not a missing resource.
var statuses = map[string]int{
	variety.CodeCropTypeNotFound:  fiber.StatusBadRequest,
	middleware.CodeRequestTimeout: fiber.StatusGatewayTimeout,
}

// NewErrorRenderer returns the renderer with the agrovida message catalog.
func NewErrorRenderer(hideDetails bool) *server.ErrorRenderer {
	return server.NewErrorRenderer(
		hideDetails,
		server.WithMessages(messages),
		server.WithStatuses(statuses),
	)
}
