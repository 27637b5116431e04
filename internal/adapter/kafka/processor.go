package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/vintagefinds/storefront/pkg/schema"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A listingsFilterCodec used for serde [schema.ListingsFilterV1]
type listingsFilterCodec struct {
	serde Serde
}

func newListingsFilterCodec(s Serde) listingsFilterCodec {
	return listingsFilterCodec{s}
}

func (c listingsFilterCodec) Encode(v any) ([]byte, error) {
	const op = "listingsFilterCodec.Encode"
	if _, ok := v.(schema.ListingsFilterV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c listingsFilterCodec) Decode(data []byte) (any, error) {
	const op = "listingsFilterCodec.Decode"
	var s schema.ListingsFilterV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A filterValue represents the stored listings filter
// for a particular shopper.
type filterValue struct {
	Brands     []string `json:"brands"`
	Conditions []string `json:"conditions"`
}

// A filterValueCodec used for serde [filterValue]
type filterValueCodec struct{}

func (filterValueCodec) Encode(v any) ([]byte, error) {
	const op = "filterValueCodec.Encode"
	fv, ok := v.(filterValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data, err := json.Marshal(fv)
	if err != nil {
		return nil, opErr(err, op)
	}
	return data, nil
}

func (filterValueCodec) Decode(data []byte) (any, error) {
	const op = "filterValueCodec.Decode"
	var fv filterValue
	if err := json.Unmarshal(data, &fv); err != nil {
		return nil, opErr(err, op)
	}
	return fv, nil
}

// A ShopperFilterProcessor moves listings filter events
// from stream topic to group table.
type ShopperFilterProcessor struct {
	opPrefix string
	proc     processor
}

func NewShopperFilterProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	listingsFilterSerde Serde,
) (*ShopperFilterProcessor, error) {
	const op = "NewShopperFilterProc"

	var p ShopperFilterProcessor

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newListingsFilterCodec(listingsFilterSerde),
			p.processFn,
		),
		goka.Persist(filterValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNoLogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.opPrefix = "ShopperFilterProcessor"
	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *ShopperFilterProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *ShopperFilterProcessor) Close() {
	p.proc.close()
}

func (p *ShopperFilterProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.ListingsFilterV1)
	v := filterValue{
		Brands:     event.Brands,
		Conditions: event.Conditions,
	}
	ctx.SetValue(v)
	log.Info(
		"set listings filter",
		"shopper", event.Shopper,
		"brands", len(v.Brands),
		"conditions", len(v.Conditions),
	)
}
