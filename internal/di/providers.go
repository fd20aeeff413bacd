package di

import (
	"context"
	"fmt"
	"time"

	domrepo "PriceScout/internal/domain/repository"
	"PriceScout/internal/handler/api"
	mid "PriceScout/internal/middleware"
	internalrepo "PriceScout/internal/repository"
	"PriceScout/internal/service/ebay"
	"PriceScout/internal/service/scrape"
	"PriceScout/internal/services/extract"
	"PriceScout/internal/services/pricing"
	"PriceScout/internal/services/research"
	"PriceScout/internal/usecase"
	"PriceScout/pkg/cache"
	pkgch "PriceScout/pkg/clickhouse"
	"PriceScout/pkg/config"
	xhttp "PriceScout/pkg/http"
	pkgkafka "PriceScout/pkg/kafka"
	applogger "PriceScout/pkg/logger"
	"PriceScout/pkg/metrics"
	"PriceScout/pkg/server"
)

// ProvideLogger creates the application logger. Production gets JSON,
// everything else console.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "console"
	if cfg.Environment == "production" {
		format = "json"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideCache creates the fetch-result cache: layered memory+Redis when
// Redis is configured, memory-only otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix("pricescout"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvidePricingOptions maps config onto engine options, keeping defaults
// for anything unset.
func ProvidePricingOptions(cfg *config.Config) pricing.Options {
	opts := pricing.DefaultOptions()
	if cfg.Pricing.MarkupPercent > 0 {
		opts.MarkupPercent = cfg.Pricing.MarkupPercent
	}
	if cfg.Pricing.MaxResults > 0 {
		opts.MaxResults = cfg.Pricing.MaxResults
	}
	if cfg.Pricing.MinResults > 0 {
		opts.MinResults = cfg.Pricing.MinResults
	}
	if cfg.Pricing.LookbackDays > 0 {
		opts.LookbackDays = cfg.Pricing.LookbackDays
	}
	if cfg.Pricing.MinPrice > 0 {
		opts.MinPrice = cfg.Pricing.MinPrice
	}
	if len(cfg.Pricing.ExcludeWords) > 0 {
		opts.ExcludeWords = cfg.Pricing.ExcludeWords
	}
	if cfg.Pricing.OutlierIQRMultiplier > 0 {
		opts.OutlierIQRMultiplier = cfg.Pricing.OutlierIQRMultiplier
	}
	if cfg.Pricing.ConfidenceFullSample > 0 {
		opts.ConfidenceFullSample = cfg.Pricing.ConfidenceFullSample
	}
	return opts
}

// ProvideFetcher selects the listing source backend and wraps it with the
// read-through cache.
func ProvideFetcher(
	cfg *config.Config,
	l *applogger.Logger,
	c cache.Service,
) (domrepo.ListingFetcher, error) {
	var inner domrepo.ListingFetcher
	switch cfg.Fetcher.Backend {
	case "scrape":
		inner = scrape.New(cfg.Scraper.ChromePath, cfg.Scraper.PageTimeout, l)
	case "api", "":
		inner = ebay.New(
			cfg.Ebay.BaseURL,
			cfg.Ebay.APIKey,
			cfg.Ebay.Timeout,
			l,
			ebay.WithRate(cfg.Ebay.RatePerSec, cfg.Ebay.RateBurst),
		)
	default:
		return nil, fmt.Errorf("unknown fetcher backend %q", cfg.Fetcher.Backend)
	}

	if cfg.Fetcher.CacheTTL <= 0 {
		return inner, nil
	}
	return internalrepo.NewCachedFetcher(inner, c, cfg.Fetcher.CacheTTL, l), nil
}

// ProvideExtractor creates the search-term extractor.
func ProvideExtractor() *extract.Extractor { return extract.New() }

// ProvideResearchGenerator creates the manual-research aid generator.
func ProvideResearchGenerator() *research.Generator { return research.New() }

// ProvideClickHouseClient creates the ClickHouse client and initializes the
// analyses schema. Returns nil when history storage is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		`CREATE TABLE IF NOT EXISTS ` + db + `.analyses (
            analysis_id String,
            ts DateTime,
            terms String,
            strategy_kind String,
            success UInt8,
            sample_count UInt32,
            min Float64,
            max Float64,
            mean Float64,
            median Float64,
            stdev Float64,
            suggested_price Float64,
            confidence Float64
        ) ENGINE=MergeTree ORDER BY (terms, ts)`,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideAnalysisStore creates the ClickHouse-backed history store.
func ProvideAnalysisStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) domrepo.AnalysisStore {
	if chClient == nil {
		return nil
	}
	store := internalrepo.NewClickHouseAnalysisStore(chClient.DB(), cfg.ClickHouse.Database+".analyses")
	store.SetLogger(l)
	return store
}

// ProvideKafkaProducer creates a Kafka producer, or nil when the batch
// pipeline is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideResultPublisher creates the analysis-result event publisher.
func ProvideResultPublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.ResultPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaResultPublisher(producer, cfg.Kafka.ResultsTopic)
}

// ProvideKafkaConsumer creates the items-topic consumer, or nil when the
// batch pipeline is disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideProgressHub creates the analysis progress fan-out hub.
func ProvideProgressHub(m domrepo.Metrics) *mid.ProgressHub {
	return mid.NewProgressHub(m)
}

// ProvideAnalyzer creates the pricing analysis use case.
func ProvideAnalyzer(
	fetcher domrepo.ListingFetcher,
	extractor *extract.Extractor,
	gen *research.Generator,
	m domrepo.Metrics,
	l *applogger.Logger,
	opts pricing.Options,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(fetcher, extractor, gen, m, l, opts)
}

// ProvideKafkaItemsHandler registers the handler for the items topic.
func ProvideKafkaItemsHandler(
	cfg *config.Config,
	analyzer *usecase.Analyzer,
	store domrepo.AnalysisStore,
	pub domrepo.ResultPublisher,
	hub *mid.ProgressHub,
	m domrepo.Metrics,
) *usecase.KafkaItemsHandler {
	return usecase.NewKafkaItemsHandler(cfg.Kafka.ItemsTopic, analyzer, store, pub, hub, m)
}

// ProvidePricingHandler creates the HTTP handler for the pricing API.
func ProvidePricingHandler(
	l *applogger.Logger,
	analyzer *usecase.Analyzer,
	gen *research.Generator,
	store domrepo.AnalysisStore,
	hub *mid.ProgressHub,
) xhttp.Handler {
	return api.NewPricingHandler(l, analyzer, gen, store, hub)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaItemsHandler,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	pub domrepo.ResultPublisher,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, l, handler, consumer, kh, producer, chClient, pub)
}
