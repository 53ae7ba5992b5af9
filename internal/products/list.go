package product

import (
	"github.com/partsdepot/partsdepot-backend/pkg/enums"
	"github.com/partsdepot/partsdepot-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	Category *enums.PartCategory `json:"category,omitempty"`
	Brand    *string             `json:"brand,omitempty"`
	Query    string              `json:"q,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
type ListProductsInput struct {
	Filters         ProductListFilters
	Pagination      pagination.Params
	IncludeInactive bool
}
