package variety

import (
	"context"
	"strings"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/repogen"
	"github.com/rise-and-shine/agrovida/sorter"
	"github.com/rise-and-shine/agrovida/val"
	"github.com/uptrace/bun"
)

// Filter narrows variety reads. Zero values mean "no restriction".
type Filter struct {
	ID         int64
	CropTypeID int64
	// Name matches exactly, NamePattern is a case-insensitive substring.
	Name        string
	NamePattern string
	ExcludeID   int64

	Sort   []sorter.Opt
	Limit  int
	Offset int
}

type cropTypeFilter struct {
	ID int64
}

type farmCropFilter struct {
	VarietyID int64
}

// Repository reads and writes varieties. It keeps no state between calls;
// every read goes to the store.
type Repository struct {
	db        bun.IDB
	varieties *repogen.BunRepo[Variety, Filter]
	cropTypes *repogen.BunReadOnlyRepo[CropType, cropTypeFilter]
	farmCrops *repogen.BunReadOnlyRepo[FarmCrop, farmCropFilter]
}

// NewRepository creates a Repository over idb.
func NewRepository(idb bun.IDB) *Repository {
	return &Repository{
		db: idb,
		varieties: repogen.NewRepoBuilder[Variety, Filter](idb).
			WithEntityName("variety").
			WithNotFoundCode(CodeVarietyNotFound).
			WithConflictCode(CodeVarietyAlreadyExists).
			WithMissingRefCode(CodeCropTypeNotFound).
			WithInUseCode(CodeVarietyInUse).
			WithFilterFunc(filterVarieties).
			Build(),
		cropTypes: repogen.NewReadOnlyRepoBuilder[CropType, cropTypeFilter](idb).
			WithEntityName("crop type").
			WithNotFoundCode(CodeCropTypeNotFound).
			WithFilterFunc(filterCropTypes).
			Build(),
		farmCrops: repogen.NewReadOnlyRepoBuilder[FarmCrop, farmCropFilter](idb).
			WithEntityName("farm crop").
			WithFilterFunc(filterFarmCrops).
			Build(),
	}
}

// FindAll returns every variety ordered by crop type name, then variety name.
func (r *Repository) FindAll(ctx context.Context) ([]Variety, error) {
	items, err := r.varieties.List(ctx, Filter{Sort: []sorter.Opt{
		{F: "ct.crop_type_name", D: sorter.Asc},
		{F: "v.variety_name", D: sorter.Asc},
	}})
	return items, errx.Wrap(err)
}

// FindByID returns the variety or nil when it does not exist.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Variety, error) {
	v, err := r.varieties.FirstOrNil(ctx, Filter{ID: id})
	return v, errx.Wrap(err)
}

// Get returns the variety or a VARIETY_NOT_FOUND error.
func (r *Repository) Get(ctx context.Context, id int64) (*Variety, error) {
	v, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errVarietyNotFound(id)
	}
	return v, nil
}

// FindByCropType returns the varieties of one crop type ordered by name.
func (r *Repository) FindByCropType(ctx context.Context, cropTypeID int64) ([]Variety, error) {
	items, err := r.varieties.List(ctx, Filter{
		CropTypeID: cropTypeID,
		Sort:       []sorter.Opt{{F: "v.variety_name", D: sorter.Asc}},
	})
	return items, errx.Wrap(err)
}

// ListCropTypes returns all crop types ordered by name.
func (r *Repository) ListCropTypes(ctx context.Context) ([]CropType, error) {
	items, err := r.cropTypes.List(ctx, cropTypeFilter{})
	return items, errx.Wrap(err)
}

// Create validates and inserts a variety and returns it as stored.
//
// The duplicate and crop type checks run before the insert for precise
// errors; the unique (variety_name, crop_type_id) constraint and the
// crop type foreign key settle concurrent writers.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*Variety, error) {
	if err := val.ValidateSchema(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	if err := r.ensureCropType(ctx, in.CropTypeID); err != nil {
		return nil, err
	}
	if err := r.ensureUnique(ctx, name, in.CropTypeID, 0); err != nil {
		return nil, err
	}

	if err := r.varieties.Create(ctx, &Variety{Name: name, CropTypeID: in.CropTypeID}); err != nil {
		return nil, errx.Wrap(err)
	}

	created, err := r.varieties.Get(ctx, Filter{Name: name, CropTypeID: in.CropTypeID})
	return created, errx.Wrap(err)
}

// Update validates and rewrites a variety and returns the refreshed record.
// The duplicate check ignores the variety itself.
func (r *Repository) Update(ctx context.Context, in UpdateInput) (*Variety, error) {
	if err := val.ValidateSchema(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	if _, err := r.Get(ctx, in.ID); err != nil {
		return nil, err
	}

	if err := r.ensureCropType(ctx, in.CropTypeID); err != nil {
		return nil, err
	}
	if err := r.ensureUnique(ctx, name, in.CropTypeID, in.ID); err != nil {
		return nil, err
	}

	err := r.varieties.Update(ctx, &Variety{ID: in.ID, Name: name, CropTypeID: in.CropTypeID})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	updated, err := r.varieties.Get(ctx, Filter{ID: in.ID})
	return updated, errx.Wrap(err)
}

// Delete removes a variety that no farm crop references.
// It reports whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return false, err
	}

	inUse, err := r.farmCrops.Exists(ctx, farmCropFilter{VarietyID: id})
	if err != nil {
		return false, errx.Wrap(err)
	}
	if inUse {
		return false, errInUse(id)
	}

	if err = r.varieties.Delete(ctx, &Variety{ID: id}); err != nil {
		return false, errx.Wrap(err)
	}

	return true, nil
}

func (r *Repository) ensureCropType(ctx context.Context, cropTypeID int64) error {
	exists, err := r.cropTypes.Exists(ctx, cropTypeFilter{ID: cropTypeID})
	if err != nil {
		return errx.Wrap(err)
	}
	if !exists {
		return errCropTypeNotFound(cropTypeID)
	}
	return nil
}

func (r *Repository) ensureUnique(ctx context.Context, name string, cropTypeID, excludeID int64) error {
	exists, err := r.varieties.Exists(ctx, Filter{Name: name, CropTypeID: cropTypeID, ExcludeID: excludeID})
	if err != nil {
		return errx.Wrap(err)
	}
	if exists {
		return errDuplicate(name, cropTypeID)
	}
	return nil
}

func filterVarieties(q *bun.SelectQuery, f Filter) *bun.SelectQuery {
	q = q.
		ColumnExpr("v.variety_id, v.variety_name, v.crop_type_id").
		ColumnExpr("ct.crop_type_name").
		Join("JOIN crop_types AS ct ON ct.crop_type_id = v.crop_type_id")

	if f.ID != 0 {
		q = q.Where("v.variety_id = ?", f.ID)
	}
	if f.CropTypeID != 0 {
		q = q.Where("v.crop_type_id = ?", f.CropTypeID)
	}
	if f.Name != "" {
		q = q.Where("v.variety_name = ?", f.Name)
	}
	if f.NamePattern != "" {
		q = q.Where("LOWER(v.variety_name) LIKE ? ESCAPE '!'", containsPattern(f.NamePattern))
	}
	if f.ExcludeID != 0 {
		q = q.Where("v.variety_id <> ?", f.ExcludeID)
	}

	for _, opt := range f.Sort {
		q = q.OrderExpr(opt.ToSQL())
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	return q
}

func filterCropTypes(q *bun.SelectQuery, f cropTypeFilter) *bun.SelectQuery {
	if f.ID != 0 {
		q = q.Where("ct.crop_type_id = ?", f.ID)
	}
	return q.Order("ct.crop_type_name ASC")
}

func filterFarmCrops(q *bun.SelectQuery, f farmCropFilter) *bun.SelectQuery {
	return q.Where("fc.variety_id = ?", f.VarietyID)
}
