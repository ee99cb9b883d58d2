package val_test

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/val"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name       string `json:"variety_name" validate:"required,trimmin=2"`
	CropTypeID int64  `json:"crop_type_id" validate:"required,gt=0"`
}

type batch struct {
	Items []item `json:"varieties" validate:"required,min=1,dive"`
}

type search struct {
	Order string `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name       string
		schema     any
		wantFields map[string]string
	}{
		{
			name:   "valid item",
			schema: item{Name: "Criollo", CropTypeID: 2},
		},
		{
			name:   "whitespace padded name",
			schema: item{Name: "  A  ", CropTypeID: 1},
			wantFields: map[string]string{
				"variety_name": "Must be at least 2 characters, not counting surrounding spaces",
			},
		},
		{
			name:   "missing everything",
			schema: item{},
			wantFields: map[string]string{
				"variety_name": "This field is required",
				"crop_type_id": "This field is required",
			},
		},
		{
			name:       "empty batch",
			schema:     batch{Items: []item{}},
			wantFields: map[string]string{"varieties": "Must have at least 1 items"},
		},
		{
			name:       "nested item path",
			schema:     batch{Items: []item{{Name: "Ok", CropTypeID: 1}, {Name: "Ok", CropTypeID: -1}}},
			wantFields: map[string]string{"varieties[1].crop_type_id": "Must be greater than 0"},
		},
		{
			name:       "query tag name",
			schema:     search{Order: "sideways"},
			wantFields: map[string]string{"sort_order": "Must be one of: asc, desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := val.ValidateSchema(tt.schema)
			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			e := errx.AsErrorX(err)
			assert.Equal(t, val.CodeValidationFailed, e.Code())
			assert.Equal(t, errx.T_Validation, e.Type())
			fields := e.Fields()
			assert.Len(t, fields, len(tt.wantFields))
			for k, want := range tt.wantFields {
				assert.Equal(t, want, fields[k], k)
			}
		})
	}
}

func TestTrimmedLen(t *testing.T) {
	assert.Equal(t, 0, val.TrimmedLen("   "))
	assert.Equal(t, 1, val.TrimmedLen(" ñ "))
	assert.Equal(t, 7, val.TrimmedLen("\tCriollo\n"))
}
