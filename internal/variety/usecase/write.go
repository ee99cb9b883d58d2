package usecase

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/internal/variety"
)

type CreateInput struct {
	Name       string `json:"variety_name" validate:"required,trimmin=2"`
	CropTypeID int64  `json:"crop_type_id" validate:"required,gt=0"`
}

type CreateVariety struct {
	store Store
}

func (uc *CreateVariety) OperationID() string { return OpCreateVariety }

func (uc *CreateVariety) Execute(ctx context.Context, in *CreateInput) (*variety.Variety, error) {
	v, err := uc.store.Create(ctx, variety.CreateInput(*in))
	return v, errx.Wrap(err)
}

// UpdateInput takes the id from the path and the values from the body.
type UpdateInput struct {
	ID         int64  `params:"id"           json:"-"            validate:"required,gt=0"`
	Name       string `json:"variety_name" validate:"required,trimmin=2"`
	CropTypeID int64  `json:"crop_type_id" validate:"required,gt=0"`
}

type UpdateVariety struct {
	store Store
}

func (uc *UpdateVariety) OperationID() string { return OpUpdateVariety }

func (uc *UpdateVariety) Execute(ctx context.Context, in *UpdateInput) (*variety.Variety, error) {
	v, err := uc.store.Update(ctx, variety.UpdateInput{
		ID:         in.ID,
		Name:       in.Name,
		CropTypeID: in.CropTypeID,
	})
	return v, errx.Wrap(err)
}

type DeleteInput struct {
	ID int64 `params:"id" validate:"required,gt=0"`
}

// DeleteOutput carries no data, only the confirmation message.
type DeleteOutput struct{}

func (DeleteOutput) Envelope() server.Envelope {
	return server.Envelope{Success: true}
}

type DeleteVariety struct {
	store Store
}

func (uc *DeleteVariety) OperationID() string { return OpDeleteVariety }

func (uc *DeleteVariety) Execute(ctx context.Context, in *DeleteInput) (DeleteOutput, error) {
	if _, err := uc.store.Delete(ctx, in.ID); err != nil {
		return DeleteOutput{}, errx.Wrap(err)
	}
	return DeleteOutput{}, nil
}
