package usecase

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/internal/variety"
)

// ListOutput is a list of varieties rendered with its count.
type ListOutput struct {
	Items []variety.Variety
}

func (o ListOutput) Envelope() server.Envelope {
	return server.OK(o.Items).WithCount(len(o.Items))
}

type ListInput struct{}

type ListVarieties struct {
	store Store
}

func (uc *ListVarieties) OperationID() string { return OpListVarieties }

func (uc *ListVarieties) Execute(ctx context.Context, _ *ListInput) (ListOutput, error) {
	items, err := uc.store.FindAll(ctx)
	if err != nil {
		return ListOutput{}, errx.Wrap(err)
	}
	return ListOutput{Items: items}, nil
}

type GetInput struct {
	ID int64 `params:"id" validate:"required,gt=0"`
}

type GetVariety struct {
	store Store
}

func (uc *GetVariety) OperationID() string { return OpGetVariety }

func (uc *GetVariety) Execute(ctx context.Context, in *GetInput) (*variety.Variety, error) {
	v, err := uc.store.Get(ctx, in.ID)
	return v, errx.Wrap(err)
}

type ListByCropTypeInput struct {
	CropTypeID int64 `params:"cropTypeId" validate:"required,gt=0"`
}

type ListByCropType struct {
	store Store
}

func (uc *ListByCropType) OperationID() string { return OpListByCropType }

func (uc *ListByCropType) Execute(ctx context.Context, in *ListByCropTypeInput) (ListOutput, error) {
	items, err := uc.store.FindByCropType(ctx, in.CropTypeID)
	if err != nil {
		return ListOutput{}, errx.Wrap(err)
	}
	return ListOutput{Items: items}, nil
}

type StatsInput struct{}

type VarietyStats struct {
	store Store
}

func (uc *VarietyStats) OperationID() string { return OpVarietyStats }

func (uc *VarietyStats) Execute(ctx context.Context, _ *StatsInput) (*variety.Statistics, error) {
	stats, err := uc.store.Statistics(ctx)
	return stats, errx.Wrap(err)
}

type ListCropTypesInput struct{}

type ListCropTypes struct {
	store Store
}

func (uc *ListCropTypes) OperationID() string { return OpListCropTypes }

func (uc *ListCropTypes) Execute(ctx context.Context, _ *ListCropTypesInput) ([]variety.CropType, error) {
	items, err := uc.store.ListCropTypes(ctx)
	return items, errx.Wrap(err)
}
