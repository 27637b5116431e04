package kafka

import (
	"context"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/vintagefinds/storefront/internal/core/cart"
	"github.com/vintagefinds/storefront/internal/core/domain"
	"github.com/vintagefinds/storefront/internal/core/port"
)

var (
	_ port.CatalogProducer        = (*CatalogProducer)(nil)
	_ port.CartEventsProducer     = (*CartEventsProducer)(nil)
	_ port.ListingsFilterProducer = (*ListingsFilterProducer)(nil)
)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CatalogProducer used for produce [domain.Product]
type CatalogProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewCatalogProducer(
	opts ...ProducerOpt,
) (CatalogProducer, error) {
	const op = "NewCatalogProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CatalogProducer{}, opErr(err, op)
		}
	}

	opPrefix := "CatalogProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return CatalogProducer{
		encoder:  options.encoder,
		producer: p,
		opPrefix: opPrefix,
	}, nil
}

func (p CatalogProducer) Close() {
	p.producer.close()
}

func (p CatalogProducer) ProduceProducts(
	ctx context.Context, vs []domain.Product,
) error {
	const op = "ProduceProducts"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	rs, err := p.createRecords(vs)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, rs...); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p CatalogProducer) createRecords(
	vs []domain.Product,
) (rs []*kgo.Record, err error) {
	const op = "createRecords"

	for _, v := range vs {
		s := productToSchemaV1(v)
		b, err := p.encoder.Encode(s)
		if err != nil {
			return nil, opErr(err, p.opPrefix, op)
		}
		msgKey := []byte(s.Slug)
		r := &kgo.Record{Key: msgKey, Value: b}
		rs = append(rs, r)
	}

	return rs, nil
}

// A CartEventsProducer used for produce cart snapshots keyed by session.
type CartEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewCartEventsProducer(
	opts ...ProducerOpt,
) (CartEventsProducer, error) {
	const op = "NewCartEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CartEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "CartEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return CartEventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p CartEventsProducer) Close() {
	p.producer.close()
}

func (p CartEventsProducer) ProduceCartSnapshot(
	ctx context.Context, sessionID string, sum cart.Summary,
) error {
	const op = "ProduceCartSnapshot"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(sessionID, sum)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p CartEventsProducer) createRecord(
	sessionID string, sum cart.Summary,
) (kgo.Record, error) {
	const op = "createRecord"

	s := cartSummaryToSchemaV1(sessionID, sum)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(s.SessionID)
	r := kgo.Record{Key: msgKey, Value: b}

	return r, nil
}

// A ListingsFilterProducer used for produce [domain.ListingsFilter]
type ListingsFilterProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewListingsFilterProducer(
	opts ...ProducerOpt,
) (ListingsFilterProducer, error) {
	const op = "NewListingsFilterProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ListingsFilterProducer{}, opErr(err, op)
		}
	}

	opPrefix := "ListingsFilterProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return ListingsFilterProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p ListingsFilterProducer) Close() {
	p.producer.close()
}

func (p ListingsFilterProducer) ProduceFilter(
	ctx context.Context, shopper string, f domain.ListingsFilter,
) error {
	const op = "ProduceFilter"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(shopper, f)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p ListingsFilterProducer) createRecord(
	shopper string, f domain.ListingsFilter,
) (kgo.Record, error) {
	const op = "createRecord"

	s := listingsFilterToSchemaV1(shopper, f)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(s.Shopper)
	r := kgo.Record{Key: msgKey, Value: b}

	return r, nil
}
