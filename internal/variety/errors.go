package variety

import (
	"fmt"

	"github.com/code19m/errx"
)

const (
	CodeVarietyNotFound      = "VARIETY_NOT_FOUND"
	CodeCropTypeNotFound     = "CROP_TYPE_NOT_FOUND"
	CodeVarietyAlreadyExists = "VARIETY_ALREADY_EXISTS"
	CodeVarietyInUse         = "VARIETY_IN_USE"
)

func errVarietyNotFound(id int64) error {
	return errx.New(
		"variety not found",
		errx.WithCode(CodeVarietyNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"variety_id": id}),
	)
}

func errCropTypeNotFound(cropTypeID int64) error {
	return errx.New(
		"crop type does not exist",
		errx.WithCode(CodeCropTypeNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"crop_type_id": cropTypeID}),
	)
}

func errDuplicate(name string, cropTypeID int64) error {
	return errx.New(
		fmt.Sprintf("variety %q already exists for this crop type", name),
		errx.WithCode(CodeVarietyAlreadyExists),
		errx.WithType(errx.T_Conflict),
		errx.WithDetails(errx.D{"variety_name": name, "crop_type_id": cropTypeID}),
	)
}

func errInUse(id int64) error {
	return errx.New(
		"cannot delete variety: it is being used in farm crops",
		errx.WithCode(CodeVarietyInUse),
		errx.WithType(errx.T_Conflict),
		errx.WithDetails(errx.D{"variety_id": id}),
	)
}
