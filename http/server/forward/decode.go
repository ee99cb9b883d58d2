package forward

import (
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
)

// bodyMethods may carry a JSON body. DELETE is included for bulk deletes.
//
//nolint:gochecknoglobals // read-only
var bodyMethods = []string{fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete}

func decodeBody[I any](c *fiber.Ctx, req I) error {
	if !slices.Contains(bodyMethods, c.Method()) || len(c.Body()) == 0 {
		return nil
	}

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return errx.New(
			"content type must be application/json",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidContentType),
		)
	}

	if err := c.BodyParser(req); err != nil {
		return errx.Wrap(
			err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidJSONBody),
		)
	}

	return nil
}

func decodeQuery[I any](c *fiber.Ctx, req I) error {
	if len(c.Queries()) == 0 {
		return nil
	}

	if err := c.QueryParser(req); err != nil {
		return errx.Wrap(
			err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidQueryParams),
		)
	}

	return nil
}

func decodePath[I any](c *fiber.Ctx, req I) error {
	if len(c.Route().Params) == 0 {
		return nil
	}

	if err := c.ParamsParser(req); err != nil {
		return errx.Wrap(
			err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidPathParams),
		)
	}

	return nil
}
