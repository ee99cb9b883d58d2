package variety

import (
	"context"
	"strings"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/sorter"
)

// DefaultSortField is used when SearchParams.SortBy is not allowed.
const DefaultSortField = "variety_name"

// SortableFields maps the public sort names to their SQL expressions.
var SortableFields = sorter.Allowed{
	"variety_name":   "v.variety_name",
	"crop_type_name": "ct.crop_type_name",
	"variety_id":     "v.variety_id",
	"crop_type_id":   "v.crop_type_id",
}

// SearchParams narrows, orders and pages a variety search.
// Empty NamePattern and zero CropTypeID match everything. Limit 0 means no limit.
type SearchParams struct {
	NamePattern string
	CropTypeID  int64
	Limit       int
	Offset      int
	SortBy      string
	SortOrder   string
}

// SearchResult is one page of varieties plus the size of the whole matching set.
type SearchResult struct {
	Items []Variety
	Total int64
}

// Search runs a filtered, sorted, paged query and a separate count over the same predicate.
func (r *Repository) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	sortOpt, _ := sorter.Resolve(p.SortBy, p.SortOrder, SortableFields, DefaultSortField)

	filter := Filter{
		NamePattern: p.NamePattern,
		CropTypeID:  p.CropTypeID,
		Sort:        []sorter.Opt{sortOpt},
		Limit:       p.Limit,
		Offset:      p.Offset,
	}

	items, err := r.varieties.List(ctx, filter)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	total, err := r.varieties.Count(ctx, filter)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &SearchResult{Items: items, Total: int64(total)}, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lowercase LIKE pattern matching s literally anywhere.
// It pairs with ESCAPE '!'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
