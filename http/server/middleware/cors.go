package middleware

import (
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rise-and-shine/agrovida/http/server"
)

// NewCORSMW allows browser clients from allowOrigins to call the API.
func NewCORSMW(allowOrigins string) server.Middleware {
	return server.Middleware{
		Priority: 850,
		Handler: cors.New(cors.Config{
			AllowOrigins: allowOrigins,
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept",
		}),
	}
}
