package forward

import (
	"fmt"
	"reflect"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/meta"
	"github.com/rise-and-shine/agrovida/observability/logger"
	"github.com/rise-and-shine/agrovida/ucdef"
	"github.com/rise-and-shine/agrovida/val"
)

const maxLogAllowedSize = 8 << 10 // 8KB

type options struct {
	status  int
	message string
}

// Option configures the success response of ToUserAction.
type Option func(*options)

// WithStatus sets the success status code. Defaults to 200.
func WithStatus(status int) Option {
	return func(o *options) {
		o.status = status
	}
}

// WithMessage sets the message of the success envelope unless the output provides one.
func WithMessage(msg string) Option {
	return func(o *options) {
		o.message = msg
	}
}

// ToUserAction forwards a request to a use case.
//
// Path params, query params and the JSON body are decoded into a fresh I,
// which must be a pointer to a struct, then validated with val.ValidateSchema.
// The output is wrapped in a success envelope. Outputs implementing
// server.Enveloper shape the envelope themselves.
func ToUserAction[I, O any](uc ucdef.UserAction[I, O], opts ...Option) fiber.Handler {
	o := options{status: fiber.StatusOK}
	for _, opt := range opts {
		opt(&o)
	}

	return func(c *fiber.Ctx) error {
		req, err := newRequest[I]()
		if err != nil {
			return errx.Wrap(err)
		}

		if err = decodePath(c, req); err != nil {
			return err
		}
		if err = decodeQuery(c, req); err != nil {
			return err
		}
		if err = decodeBody(c, req); err != nil {
			return err
		}

		ctx := meta.InjectMetaToContext(c.UserContext(), map[meta.ContextKey]string{
			meta.OperationID: uc.OperationID(),
		})
		c.SetUserContext(ctx)

		log := logger.Named("http.handler").WithContext(ctx)

		if len(c.Body()) <= maxLogAllowedSize {
			log = log.With("request", req)
		} else {
			log = log.With("request", fmt.Sprintf("too large for logging: %d bytes", len(c.Body())))
		}

		if err = val.ValidateSchema(req); err != nil {
			log.Warnx(err)
			return err
		}

		resp, err := uc.Execute(ctx, req)
		if err != nil {
			return errx.Wrap(err)
		}

		env := envelopeOf(resp)
		if env.Message == "" {
			env.Message = o.message
		}

		log.Debug("use case executed")

		return errx.Wrap(server.WriteEnvelope(c, o.status, env))
	}
}

func envelopeOf(resp any) server.Envelope {
	if e, ok := resp.(server.Enveloper); ok {
		return e.Envelope()
	}
	return server.OK(resp)
}

// newRequest creates a new request of type I.
// It ensures that I is a pointer to a struct.
func newRequest[I any]() (I, error) {
	var req I

	reqType := reflect.TypeOf((*I)(nil)).Elem()
	if reqType.Kind() != reflect.Pointer || reqType.Elem().Kind() != reflect.Struct {
		return req, errx.New("input type I must be a pointer to a struct")
	}

	reqVal := reflect.New(reqType.Elem()).Interface().(I) //nolint:errcheck // safe type assertion
	return reqVal, nil
}
