// Package report runs the fixed set of read-only analysis queries over the
// farm, variety and sensor tables.
package report

import (
	"context"
	"fmt"
	"slices"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"
)

const CodeUnknownReport = "UNKNOWN_REPORT"

// Name identifies a report. Only the constants below are valid.
type Name string

const (
	Summary                Name = "summary"
	ProductionByRegion     Name = "production_by_region"
	VarietyStats           Name = "variety_stats"
	VarietyProduction      Name = "variety_production"
	UnderutilizedVarieties Name = "underutilized_varieties"
	RegionDiversity        Name = "region_diversity"
)

// Names lists every report in display order.
func Names() []Name {
	return []Name{
		Summary,
		ProductionByRegion,
		VarietyStats,
		VarietyProduction,
		UnderutilizedVarieties,
		RegionDiversity,
	}
}

// Func produces one report.
type Func func(ctx context.Context, db bun.IDB) (*Table, error)

//nolint:gochecknoglobals // closed registry, checked by MustValidateRegistry
var registry = map[Name]Func{
	Summary:                query(summarySQL),
	ProductionByRegion:     query(productionByRegionSQL),
	VarietyStats:           query(varietyStatsSQL),
	VarietyProduction:      query(varietyProductionSQL),
	UnderutilizedVarieties: query(underutilizedVarietiesSQL),
	RegionDiversity:        query(regionDiversitySQL),
}

// ValidateRegistry reports names without a report and reports without a name.
func ValidateRegistry() error {
	names := Names()

	for _, n := range names {
		if registry[n] == nil {
			return errx.New(fmt.Sprintf("report %q has no implementation", n))
		}
	}
	for n := range registry {
		if !slices.Contains(names, n) {
			return errx.New(fmt.Sprintf("report %q is not listed", n))
		}
	}

	return nil
}

// MustValidateRegistry panics if ValidateRegistry fails. Call it at startup.
func MustValidateRegistry() {
	if err := ValidateRegistry(); err != nil {
		panic(err)
	}
}

// Parse resolves a user supplied report name.
func Parse(s string) (Name, error) {
	n := Name(s)
	if _, ok := registry[n]; !ok {
		return "", errx.New(
			fmt.Sprintf("unknown report %q", s),
			errx.WithCode(CodeUnknownReport),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"available": Names()}),
		)
	}
	return n, nil
}

// Run executes the named report.
func Run(ctx context.Context, db bun.IDB, name Name) (*Table, error) {
	fn, ok := registry[name]
	if !ok {
		_, err := Parse(string(name))
		return nil, err
	}

	t, err := fn(ctx, db)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"report": name}))
	}

	t.Title = string(name)
	return t, nil
}
