package report

import (
	"context"
	"io"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/observability/tracing"
	"github.com/rise-and-shine/agrovida/ucdef"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const OpRunReport = "report.run"

type RunInput struct {
	Name string
	Out  io.Writer
}

var _ ucdef.ManualCommand[RunInput] = (*Runner)(nil)

// Runner prints a report by name.
type Runner struct {
	db bun.IDB
}

func NewRunner(db bun.IDB) *Runner {
	return &Runner{db: db}
}

func (r *Runner) OperationID() string { return OpRunReport }

func (r *Runner) Execute(ctx context.Context, in RunInput) error {
	ctx, span := tracing.Tracer().Start(ctx, OpRunReport)
	defer span.End()
	span.SetAttributes(attribute.String("report.name", in.Name))

	err := r.execute(ctx, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *Runner) execute(ctx context.Context, in RunInput) error {
	name, err := Parse(in.Name)
	if err != nil {
		return err
	}

	t, err := Run(ctx, r.db, name)
	if err != nil {
		return errx.Wrap(err)
	}

	return t.Write(in.Out)
}
