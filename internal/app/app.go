package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sr"
	"github.com/vintagefinds/storefront/config"
	"github.com/vintagefinds/storefront/internal/adapter"
	"github.com/vintagefinds/storefront/internal/adapter/httphandler"
	"github.com/vintagefinds/storefront/internal/adapter/kafka"
	"github.com/vintagefinds/storefront/internal/adapter/storage"
	"github.com/vintagefinds/storefront/internal/core/service"
	"github.com/vintagefinds/storefront/pkg/schema"
)

type serdes struct {
	product        schema.Serde
	cartSnapshot   schema.Serde
	listingsFilter schema.Serde
}

type producers struct {
	catalog        kafka.CatalogProducer
	cartEvents     kafka.CartEventsProducer
	listingsFilter kafka.ListingsFilterProducer
}

type App struct {
	ctx             context.Context
	cfg             config.Config
	serdes          serdes
	producers       producers
	sqldb           storage.SQLDB
	service         service.Service
	catalogConsumer kafka.CatalogConsumer
	filterProc      *kafka.ShopperFilterProcessor
	filterView      *kafka.FilterView
	httpServer      httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	productSubject := app.cfg.Broker.Topics.CatalogProducts + "-value"
	productSerde, err := schema.NewSerdeProductV1(
		ctx,
		schema.SubjectOpt(productSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	cartSubject := app.cfg.Broker.Topics.CartEvents + "-value"
	cartSerde, err := schema.NewSerdeCartSnapshotV1(
		ctx,
		schema.SubjectOpt(cartSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	filterSubject := app.cfg.Broker.Topics.ListingsFilterStream + "-value"
	filterSerde, err := schema.NewSerdeListingsFilterV1(
		ctx,
		schema.SubjectOpt(filterSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.product = productSerde
	app.serdes.cartSnapshot = cartSerde
	app.serdes.listingsFilter = filterSerde
}

func (app *App) brokerKgoOpts() []kgo.Opt {
	if !app.cfg.Broker.TLS.Enabled() {
		return nil
	}
	tlsConfig := adapter.MakeTLSConfig(
		app.cfg.Broker.TLS.CA,
		app.cfg.Broker.TLS.Cert,
		app.cfg.Broker.TLS.Key,
	)
	return []kgo.Opt{kgo.DialTLSConfig(tlsConfig)}
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics
	kgoOpts := app.brokerKgoOpts()

	catalogProducer, err := kafka.NewCatalogProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.CatalogProducts, kgoOpts...),
		kafka.ProducerEncoderOpt(app.serdes.product),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	cartEventsProducer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.CartEvents, kgoOpts...),
		kafka.ProducerEncoderOpt(app.serdes.cartSnapshot),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	filterProducer, err := kafka.NewListingsFilterProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.ListingsFilterStream, kgoOpts...),
		kafka.ProducerEncoderOpt(app.serdes.listingsFilter),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producers.catalog = catalogProducer
	app.producers.cartEvents = cartEventsProducer
	app.producers.listingsFilter = filterProducer

	sqldb, err := storage.NewSQLDB(ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	catalogRepo := storage.NewCatalogRepository(app.sqldb)

	archiver, err := storage.NewCartEventsArchive(
		app.cfg.Archive.HDFSAddr, app.cfg.Archive.Dir,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.service = service.New(
		app.producers.catalog,
		catalogRepo,
		app.producers.cartEvents,
		app.producers.listingsFilter,
		archiver,
	)
}

func (app *App) initInboundAdapters() {
	const op = "App.initInboundAdapters"

	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics

	catalogConsumer, err := kafka.NewCatalogConsumer(
		kafka.ConsumerClientOpt(
			seedBrokers,
			topics.CatalogProducts,
			app.cfg.Broker.Consumers.CatalogSaverGroup,
			app.brokerKgoOpts()...,
		),
		kafka.ConsumerDecoderOpt(app.serdes.product),
		kafka.CatalogConsumerSaverOpt(app.service),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.catalogConsumer = catalogConsumer

	filterProc, err := kafka.NewShopperFilterProc(
		seedBrokers,
		topics.ListingsFilterStream,
		topics.ListingsFilterTable,
		app.serdes.listingsFilter,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.filterProc = filterProc

	filterView, err := kafka.NewFilterView(seedBrokers, topics.ListingsFilterTable)
	if err != nil {
		app.fallDown(op, err)
	}
	app.filterView = filterView

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.service)
	httphandler.RegisterCard(mux, app.service)
	httphandler.RegisterCart(mux, app.service)
	httphandler.RegisterFilter(mux, app.service, app.filterView)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.catalogConsumer.Run(app.ctx)
	go app.filterView.Run(app.ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go app.filterProc.Run(app.ctx, stopFn, &wg)
	wg.Wait()

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.catalogConsumer.Close()
	app.filterProc.Close()
	app.producers.catalog.Close()
	app.producers.cartEvents.Close()
	app.producers.listingsFilter.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
