package variety

import (
	"context"
	"math"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/rdb"
	"github.com/samber/lo"
)

// CropTypeCount is the number of varieties of one crop type.
type CropTypeCount struct {
	CropTypeID   int64  `bun:"crop_type_id"   json:"crop_type_id"`
	CropTypeName string `bun:"crop_type_name" json:"crop_type_name"`
	VarietyCount int64  `bun:"variety_count"  json:"variety_count"`
}

// Overview summarizes all crop types that have varieties.
type Overview struct {
	TotalVarieties      int64   `json:"total_varieties"`
	TotalCropTypes      int64   `json:"total_crop_types"`
	AvgVarietiesPerCrop float64 `json:"avg_varieties_per_crop"`
}

type Statistics struct {
	Overview   Overview        `json:"overview"`
	ByCropType []CropTypeCount `json:"by_crop_type"`
}

// Statistics counts varieties per crop type, largest first.
// Crop types without varieties are not listed and do not count towards the average.
func (r *Repository) Statistics(ctx context.Context) (*Statistics, error) {
	groups := make([]CropTypeCount, 0)

	q := r.db.NewSelect().
		TableExpr("varieties AS v").
		Join("JOIN crop_types AS ct ON ct.crop_type_id = v.crop_type_id").
		ColumnExpr("ct.crop_type_id, ct.crop_type_name").
		ColumnExpr("COUNT(v.variety_id) AS variety_count").
		GroupExpr("ct.crop_type_id, ct.crop_type_name").
		OrderExpr("variety_count DESC, ct.crop_type_name ASC")

	if err := q.Scan(ctx, &groups); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(rdb.ErrorDetails(err, q)))
	}

	return &Statistics{Overview: overviewOf(groups), ByCropType: groups}, nil
}

func overviewOf(groups []CropTypeCount) Overview {
	total := lo.SumBy(groups, func(g CropTypeCount) int64 { return g.VarietyCount })

	o := Overview{TotalVarieties: total, TotalCropTypes: int64(len(groups))}
	if o.TotalCropTypes > 0 {
		avg := float64(total) / float64(o.TotalCropTypes)
		o.AvgVarietiesPerCrop = math.Round(avg*100) / 100 //nolint:mnd // two decimals
	}

	return o
}
