package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/format"
	"github.com/curiohq/curio/lib/ptr"
	"github.com/curiohq/curio/lib/svc"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/model"
)

const (
	// EndPtListItems lists minted items.
	EndPtListItems EndPtName = "ListItems"
)

func init() {
	registrar[EndPtListItems] = NewListItems
}

// ListItems lists minted items, most recent first, paged by creation time.
type ListItems struct {
	CreatedBefore time.Time
	Limit         uint
}

// NewListItems constructs and initializes the endpoint.
func NewListItems(
	r *http.Request,
) (Endpoint, error) {
	return &ListItems{}, nil
}

// Validate validates the input parameters.
func (e *ListItems) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	createdBefore, err := ValidateCreatedBefore(ctx,
		r.URL.Query().Get("created_before"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.CreatedBefore = *createdBefore

	limit, err := ValidateLimit(ctx, r.URL.Query().Get("limit"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Limit = *limit

	return nil
}

// Execute executes the endpoint.
func (e *ListItems) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	items, err := model.LoadItemListByCreatedBefore(ctx,
		e.CreatedBefore, e.Limit)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	resources := []market.ItemResource{}
	for i := range items {
		resources = append(resources, model.NewItemResource(ctx, &items[i]))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"items": format.JSONPtr(resources),
	}, nil
}
