package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/internal/variety"
	"github.com/samber/lo"
)

// Bulk inputs are only checked for being a non-empty list here.
// Items are decoded and validated one by one and their failures land in the result.

// reportErrors rewrites item failures with the same rules as error responses,
// so hidden internal causes never reach a success body.
func reportErrors(r *server.ErrorRenderer, errs []variety.BulkError) []variety.BulkError {
	return lo.Map(errs, func(e variety.BulkError, _ int) variety.BulkError {
		f := r.Failure(e.Err)
		e.Code, e.Error, e.Fields = f.Code, f.Error, f.Fields
		return e
	})
}

type CreateBulkInput struct {
	Varieties []json.RawMessage `json:"varieties" validate:"required,min=1"`
}

type CreateBulkOutput struct {
	Created int                 `json:"created"`
	Skipped int                 `json:"skipped"`
	Errors  []variety.BulkError `json:"errors"`
}

func (o CreateBulkOutput) Envelope() server.Envelope {
	return server.OK(o).WithMessage(fmt.Sprintf("%d varieties created successfully", o.Created))
}

type CreateVarietiesBulk struct {
	store    Store
	renderer *server.ErrorRenderer
}

func (uc *CreateVarietiesBulk) OperationID() string { return OpCreateVarietiesBulk }

func (uc *CreateVarietiesBulk) Execute(ctx context.Context, in *CreateBulkInput) (CreateBulkOutput, error) {
	res := uc.store.CreateBulk(ctx, in.Varieties)
	return CreateBulkOutput{Created: res.Succeeded, Skipped: res.Failed, Errors: reportErrors(uc.renderer, res.Errors)}, nil
}

type UpdateBulkInput struct {
	Varieties []json.RawMessage `json:"varieties" validate:"required,min=1"`
}

type UpdateBulkOutput struct {
	Updated int                 `json:"updated"`
	Failed  int                 `json:"failed"`
	Errors  []variety.BulkError `json:"errors"`
}

func (o UpdateBulkOutput) Envelope() server.Envelope {
	return server.OK(o).WithMessage("Bulk update completed")
}

type UpdateVarietiesBulk struct {
	store    Store
	renderer *server.ErrorRenderer
}

func (uc *UpdateVarietiesBulk) OperationID() string { return OpUpdateVarietiesBulk }

func (uc *UpdateVarietiesBulk) Execute(ctx context.Context, in *UpdateBulkInput) (UpdateBulkOutput, error) {
	res := uc.store.UpdateBulk(ctx, in.Varieties)
	return UpdateBulkOutput{Updated: res.Succeeded, Failed: res.Failed, Errors: reportErrors(uc.renderer, res.Errors)}, nil
}

type DeleteBulkInput struct {
	IDs []json.RawMessage `json:"ids" validate:"required,min=1"`
}

type DeleteBulkOutput struct {
	Deleted int                 `json:"deleted"`
	Failed  int                 `json:"failed"`
	Errors  []variety.BulkError `json:"errors"`
}

func (o DeleteBulkOutput) Envelope() server.Envelope {
	return server.OK(o).WithMessage(fmt.Sprintf("%d varieties deleted successfully", o.Deleted))
}

type DeleteVarietiesBulk struct {
	store    Store
	renderer *server.ErrorRenderer
}

func (uc *DeleteVarietiesBulk) OperationID() string { return OpDeleteVarietiesBulk }

func (uc *DeleteVarietiesBulk) Execute(ctx context.Context, in *DeleteBulkInput) (DeleteBulkOutput, error) {
	res := uc.store.DeleteBulk(ctx, in.IDs)
	return DeleteBulkOutput{Deleted: res.Succeeded, Failed: res.Failed, Errors: reportErrors(uc.renderer, res.Errors)}, nil
}
