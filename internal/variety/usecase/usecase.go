// Package usecase exposes the variety operations as user actions.
package usecase

import (
	"context"
	"encoding/json"

	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/internal/variety"
	"github.com/rise-and-shine/agrovida/ucdef"
)

// Operation ids of every variety user action.
const (
	OpListVarieties       = "variety.list"
	OpGetVariety          = "variety.get"
	OpListByCropType      = "variety.list_by_crop_type"
	OpSearchVarieties     = "variety.search"
	OpVarietyStats        = "variety.stats"
	OpCreateVariety       = "variety.create"
	OpUpdateVariety       = "variety.update"
	OpDeleteVariety       = "variety.delete"
	OpCreateVarietiesBulk = "variety.create_bulk"
	OpUpdateVarietiesBulk = "variety.update_bulk"
	OpDeleteVarietiesBulk = "variety.delete_bulk"
	OpListCropTypes       = "crop_type.list"
)

// Store is the part of variety.Repository the use cases need.
type Store interface {
	FindAll(ctx context.Context) ([]variety.Variety, error)
	Get(ctx context.Context, id int64) (*variety.Variety, error)
	FindByCropType(ctx context.Context, cropTypeID int64) ([]variety.Variety, error)
	ListCropTypes(ctx context.Context) ([]variety.CropType, error)
	Search(ctx context.Context, p variety.SearchParams) (*variety.SearchResult, error)
	Statistics(ctx context.Context) (*variety.Statistics, error)
	Create(ctx context.Context, in variety.CreateInput) (*variety.Variety, error)
	Update(ctx context.Context, in variety.UpdateInput) (*variety.Variety, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CreateBulk(ctx context.Context, items []json.RawMessage) variety.BulkResult
	UpdateBulk(ctx context.Context, items []json.RawMessage) variety.BulkResult
	DeleteBulk(ctx context.Context, ids []json.RawMessage) variety.BulkResult
}

// Set holds every variety user action.
type Set struct {
	List           ucdef.UserAction[*ListInput, ListOutput]
	Get            ucdef.UserAction[*GetInput, *variety.Variety]
	ListByCropType ucdef.UserAction[*ListByCropTypeInput, ListOutput]
	Search         ucdef.UserAction[*SearchInput, SearchOutput]
	Stats          ucdef.UserAction[*StatsInput, *variety.Statistics]
	Create         ucdef.UserAction[*CreateInput, *variety.Variety]
	Update         ucdef.UserAction[*UpdateInput, *variety.Variety]
	Delete         ucdef.UserAction[*DeleteInput, DeleteOutput]
	CreateBulk     ucdef.UserAction[*CreateBulkInput, CreateBulkOutput]
	UpdateBulk     ucdef.UserAction[*UpdateBulkInput, UpdateBulkOutput]
	DeleteBulk     ucdef.UserAction[*DeleteBulkInput, DeleteBulkOutput]
	ListCropTypes  ucdef.UserAction[*ListCropTypesInput, []variety.CropType]
}

// New wires all user actions to store. renderer shapes the per-item
// failures of bulk actions.
func New(store Store, renderer *server.ErrorRenderer) *Set {
	return &Set{
		List:           &ListVarieties{store: store},
		Get:            &GetVariety{store: store},
		ListByCropType: &ListByCropType{store: store},
		Search:         &SearchVarieties{store: store},
		Stats:          &VarietyStats{store: store},
		Create:         &CreateVariety{store: store},
		Update:         &UpdateVariety{store: store},
		Delete:         &DeleteVariety{store: store},
		CreateBulk:     &CreateVarietiesBulk{store: store, renderer: renderer},
		UpdateBulk:     &UpdateVarietiesBulk{store: store, renderer: renderer},
		DeleteBulk:     &DeleteVarietiesBulk{store: store, renderer: renderer},
		ListCropTypes:  &ListCropTypes{store: store},
	}
}
