package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lovoo/goka"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/vintagefinds/storefront/internal/core/cart"
	"github.com/vintagefinds/storefront/internal/core/domain"
	"github.com/vintagefinds/storefront/internal/core/port"
	"github.com/vintagefinds/storefront/pkg/schema"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string, extra ...kgo.Opt,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		kgoOpts = append(kgoOpts, extra...)

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ConsumerOpt func(*consumerOpts) error

type consumerOpts struct {
	cl           ConsumerClient
	decoder      Decoder
	catalogSaver port.CatalogSaver
}

func (co *consumerOpts) apply(opts ...ConsumerOpt) error {
	for _, opt := range opts {
		if err := opt(co); err != nil {
			return err
		}
	}
	return nil
}

func ConsumerClientOpt(
	seedBrokers []string, topic, group string, extra ...kgo.Opt,
) ConsumerOpt {
	return func(co *consumerOpts) error {
		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.ConsumeTopics(topic),
			kgo.ConsumerGroup(group),
			kgo.DisableAutoCommit(),
		}
		kgoOpts = append(kgoOpts, extra...)

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}
		co.cl = cl
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(co *consumerOpts) error {
		if decoder == nil {
			return errors.New("decoder is nil")
		}
		co.decoder = decoder
		return nil
	}
}

func CatalogConsumerSaverOpt(cs port.CatalogSaver) ConsumerOpt {
	return func(co *consumerOpts) error {
		if cs == nil {
			return errors.New("catalog saver is nil")
		}
		co.catalogSaver = cs
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNoLogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func productToSchemaV1(v domain.Product) (s schema.ProductV1) {
	s.ProductID = v.ID
	s.Slug = v.Slug
	s.Title = v.Title
	s.Description = v.Description
	s.Brand = v.Brand
	s.Condition = v.Condition
	s.Images = v.Images
	s.Featured = v.Featured
	s.Price = v.Price
	s.CompareAt = v.CompareAt
	s.InStock = v.InStock
	s.Currency = v.Currency

	s.Options = make([]schema.ProductOptionV1, len(v.Options))
	for i, opt := range v.Options {
		s.Options[i] = schema.ProductOptionV1{
			Name:     opt.Name,
			Values:   opt.Values,
			Swatches: opt.Swatches,
		}
	}

	s.Variants = make([]schema.VariantV1, len(v.Variants))
	for i, vr := range v.Variants {
		s.Variants[i] = schema.VariantV1{
			VariantID:    vr.ID,
			OptionValues: vr.OptionValues,
			Price:        vr.Price,
			CompareAt:    vr.CompareAt,
			Stock:        vr.Stock,
			Image:        vr.Image,
		}
	}
	return
}

func schemaV1ToProduct(s schema.ProductV1) (v domain.Product) {
	v.ID = s.ProductID
	v.Slug = s.Slug
	v.Title = s.Title
	v.Description = s.Description
	v.Brand = s.Brand
	v.Condition = s.Condition
	v.Images = s.Images
	v.Featured = s.Featured
	v.Price = s.Price
	v.CompareAt = s.CompareAt
	v.InStock = s.InStock
	v.Currency = s.Currency

	v.Options = make([]domain.Option, len(s.Options))
	for i, opt := range s.Options {
		v.Options[i] = domain.Option{
			Name:     opt.Name,
			Values:   opt.Values,
			Swatches: opt.Swatches,
		}
	}

	v.Variants = make([]domain.Variant, len(s.Variants))
	for i, vr := range s.Variants {
		v.Variants[i] = domain.Variant{
			ID:           vr.VariantID,
			OptionValues: vr.OptionValues,
			Price:        vr.Price,
			CompareAt:    vr.CompareAt,
			Stock:        vr.Stock,
			Image:        vr.Image,
		}
	}
	return
}

func cartSummaryToSchemaV1(
	sessionID string, sum cart.Summary,
) (s schema.CartSnapshotV1) {
	s.SessionID = sessionID
	s.TotalItems = sum.TotalItems
	s.TotalPrice = sum.TotalPrice

	s.Items = make([]schema.LineItemV1, len(sum.Items))
	for i, it := range sum.Items {
		s.Items[i] = schema.LineItemV1{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	return
}

func listingsFilterToSchemaV1(
	shopper string, f domain.ListingsFilter,
) (s schema.ListingsFilterV1) {
	s.Shopper = shopper
	s.Brands = f.Brands
	s.Conditions = f.Conditions
	return
}
