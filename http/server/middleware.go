package server

import (
	"cmp"
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// Middleware is a fiber handler with a Priority; higher priorities are registered first.
type Middleware struct {
	Priority int
	Handler  fiber.Handler
}

// ordered drops nil handlers and sorts the rest by descending priority.
// Middlewares with equal priority keep their given order.
func ordered(middlewares []Middleware) []fiber.Handler {
	active := lo.Filter(middlewares, func(mw Middleware, _ int) bool { return mw.Handler != nil })
	slices.SortStableFunc(active, func(a, b Middleware) int { return cmp.Compare(b.Priority, a.Priority) })
	return lo.Map(active, func(mw Middleware, _ int) fiber.Handler { return mw.Handler })
}
