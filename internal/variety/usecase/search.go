package usecase

import (
	"context"
	"strings"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/internal/variety"
	"github.com/rise-and-shine/agrovida/pagination"
)

// SearchInput carries the query string of GET /api/varieties/search.
// CropType 0 means every crop type.
type SearchInput struct {
	Name      string `query:"name"`
	CropType  int64  `query:"crop_type"  validate:"gte=0"`
	Page      int    `query:"page"       validate:"gte=0"`
	Limit     int    `query:"limit"      validate:"gte=0"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}

type SearchOutput struct {
	Items      []variety.Variety
	Pagination pagination.Response
}

func (o SearchOutput) Envelope() server.Envelope {
	return server.OK(o.Items).WithPagination(o.Pagination)
}

type SearchVarieties struct {
	store Store
}

func (uc *SearchVarieties) OperationID() string { return OpSearchVarieties }

func (uc *SearchVarieties) Execute(ctx context.Context, in *SearchInput) (SearchOutput, error) {
	page := pagination.Request{Page: in.Page, Limit: in.Limit}
	page.Normalize()

	res, err := uc.store.Search(ctx, variety.SearchParams{
		NamePattern: strings.TrimSpace(in.Name),
		CropTypeID:  in.CropType,
		Limit:       page.Limit,
		Offset:      page.Offset(),
		SortBy:      in.SortBy,
		SortOrder:   in.SortOrder,
	})
	if err != nil {
		return SearchOutput{}, errx.Wrap(err)
	}

	return SearchOutput{Items: res.Items, Pagination: page.NewResponse(res.Total)}, nil
}
