package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/vintagefinds/storefront/internal/core/domain"
	"github.com/vintagefinds/storefront/internal/core/port"
)

var _ port.FilterReader = (*FilterView)(nil)

// A FilterView reads the shopper filter group table,
// serving the current listings filter per shopper.
type FilterView struct {
	gv *goka.View
}

func NewFilterView(
	seedBrokers []string, groupTable string,
) (*FilterView, error) {
	const op = "NewFilterView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		filterValueCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &FilterView{gv}, nil
}

func (v *FilterView) Run(ctx context.Context) {
	const op = "FilterView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v *FilterView) Filter(
	shopper string,
) (domain.ListingsFilter, bool, error) {
	const op = "FilterView.Filter"

	raw, err := v.gv.Get(shopper)
	if err != nil {
		return domain.ListingsFilter{}, false, opErr(err, op)
	}

	if raw == nil {
		return domain.ListingsFilter{}, false, nil
	}

	fv, ok := raw.(filterValue)
	if !ok {
		err := fmt.Errorf("unexpected type of data: %T", raw)
		return domain.ListingsFilter{}, false, opErr(err, op)
	}

	f := domain.ListingsFilter{
		Brands:     fv.Brands,
		Conditions: fv.Conditions,
	}
	return f, true, nil
}
