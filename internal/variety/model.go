// Package variety implements storage and business rules for plant varieties.
package variety

import "github.com/uptrace/bun"

// Variety is a named cultivar belonging to one crop type.
// CropTypeName is joined in on every read and never written.
type Variety struct {
	bun.BaseModel `bun:"table:varieties,alias:v"`

	ID           int64  `bun:"variety_id,pk,autoincrement" json:"variety_id"`
	Name         string `bun:"variety_name,notnull"        json:"variety_name"`
	CropTypeID   int64  `bun:"crop_type_id,notnull"        json:"crop_type_id"`
	CropTypeName string `bun:"crop_type_name,scanonly"     json:"crop_type_name,omitempty"`
}

// CropType is read-only reference data.
type CropType struct {
	bun.BaseModel `bun:"table:crop_types,alias:ct"`

	ID   int64  `bun:"crop_type_id,pk,autoincrement" json:"crop_type_id"`
	Name string `bun:"crop_type_name,notnull"        json:"crop_type_name"`
}

// FarmCrop links a farm to a variety. Only its existence matters here.
type FarmCrop struct {
	bun.BaseModel `bun:"table:farm_crops,alias:fc"`

	ID        int64 `bun:"farm_crop_id,pk,autoincrement"`
	VarietyID int64 `bun:"variety_id,notnull"`
}

// CreateInput holds the fields of a new variety.
type CreateInput struct {
	Name       string `json:"variety_name" validate:"required,trimmin=2"`
	CropTypeID int64  `json:"crop_type_id" validate:"required,gt=0"`
}

// UpdateInput holds the new values of an existing variety.
type UpdateInput struct {
	ID         int64  `json:"variety_id"   validate:"required,gt=0"`
	Name       string `json:"variety_name" validate:"required,trimmin=2"`
	CropTypeID int64  `json:"crop_type_id" validate:"required,gt=0"`
}
