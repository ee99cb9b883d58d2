package variety

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/val"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// BulkError locates one failed item of a bulk call.
// Err keeps the full cause; Code, Error and Fields are what clients see.
type BulkError struct {
	Index  int               `json:"index"`
	Input  json.RawMessage   `json:"input"`
	Code   string            `json:"code"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`

	Err error `json:"-"`
}

// BulkResult is the outcome of a best-effort bulk call.
// Errors follows input order.
type BulkResult struct {
	Succeeded int
	Failed    int
	Errors    []BulkError
}

func (r BulkResult) succeeded() BulkResult {
	r.Succeeded++
	return r
}

func (r BulkResult) failed(index int, input json.RawMessage, err error) BulkResult {
	e := errx.AsErrorX(err)
	r.Failed++
	r.Errors = append(r.Errors, BulkError{
		Index:  index,
		Input:  input,
		Code:   e.Code(),
		Error:  e.Error(),
		Fields: e.Fields(),
		Err:    e,
	})
	return r
}

// fold decodes and applies op to every raw item in order. A failing item,
// including one that does not decode, is recorded and never stops the items after it.
func fold[T any](
	ctx context.Context,
	items []json.RawMessage,
	decode func(json.RawMessage) (T, error),
	op func(context.Context, T) error,
) BulkResult {
	return lo.Reduce(items, func(acc BulkResult, raw json.RawMessage, i int) BulkResult {
		item, err := decode(raw)
		if err == nil {
			err = op(ctx, item)
		}
		if err != nil {
			return acc.failed(i, raw, err)
		}
		return acc.succeeded()
	}, BulkResult{Errors: make([]BulkError, 0)})
}

// bulkVariety is the loose wire form of a bulk item. Ids may arrive as
// numbers or numeric strings.
type bulkVariety struct {
	ID         any    `json:"variety_id"`
	Name       string `json:"variety_name"`
	CropTypeID any    `json:"crop_type_id"`
}

func decodeVariety(raw json.RawMessage) (bulkVariety, error) {
	var v bulkVariety
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return v, invalidItem("item", "must be an object with variety_name and crop_type_id")
	}
	return v, nil
}

func decodeCreate(raw json.RawMessage) (CreateInput, error) {
	v, err := decodeVariety(raw)
	if err != nil {
		return CreateInput{}, err
	}
	cropTypeID, err := toID("crop_type_id", v.CropTypeID)
	if err != nil {
		return CreateInput{}, err
	}
	return CreateInput{Name: v.Name, CropTypeID: cropTypeID}, nil
}

func decodeUpdate(raw json.RawMessage) (UpdateInput, error) {
	v, err := decodeVariety(raw)
	if err != nil {
		return UpdateInput{}, err
	}
	id, err := toID("variety_id", v.ID)
	if err != nil {
		return UpdateInput{}, err
	}
	cropTypeID, err := toID("crop_type_id", v.CropTypeID)
	if err != nil {
		return UpdateInput{}, err
	}
	return UpdateInput{ID: id, Name: v.Name, CropTypeID: cropTypeID}, nil
}

func decodeID(raw json.RawMessage) (int64, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, invalidItem("id", "must be an integer")
	}
	if v == nil {
		return 0, invalidItem("id", "is required")
	}
	return toID("id", v)
}

// toID accepts json numbers and numeric strings. A missing value is 0 and
// is left for the validate tags to reject.
func toID(field string, v any) (int64, error) {
	switch v.(type) {
	case nil, json.Number, string:
	default:
		return 0, invalidItem(field, "must be an integer")
	}
	id, err := cast.ToInt64E(v)
	if err != nil {
		return 0, invalidItem(field, "must be an integer")
	}
	return id, nil
}

func invalidItem(field, desc string) error {
	return errx.New(
		"Validation failed. See fields for details.",
		errx.WithCode(val.CodeValidationFailed),
		errx.WithType(errx.T_Validation),
		errx.WithFields(errx.M{field: desc}),
	)
}

// CreateBulk creates every item independently.
func (r *Repository) CreateBulk(ctx context.Context, items []json.RawMessage) BulkResult {
	return fold(ctx, items, decodeCreate, func(ctx context.Context, in CreateInput) error {
		_, err := r.Create(ctx, in)
		return err
	})
}

// UpdateBulk updates every item independently.
// An item without an id fails validation before any store access.
func (r *Repository) UpdateBulk(ctx context.Context, items []json.RawMessage) BulkResult {
	return fold(ctx, items, decodeUpdate, func(ctx context.Context, in UpdateInput) error {
		_, err := r.Update(ctx, in)
		return err
	})
}

// DeleteBulk deletes every id independently, each with the existence and in-use checks.
func (r *Repository) DeleteBulk(ctx context.Context, ids []json.RawMessage) BulkResult {
	return fold(ctx, ids, decodeID, func(ctx context.Context, id int64) error {
		_, err := r.Delete(ctx, id)
		return err
	})
}
