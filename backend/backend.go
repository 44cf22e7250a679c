package backend

import (
	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/backend/internal/database"
	"vincit.fi/similar-images/backend/internal/imageloader"
	"vincit.fi/similar-images/backend/internal/library"
	"vincit.fi/similar-images/backend/internal/metrics"
	"vincit.fi/similar-images/backend/internal/phash"
	"vincit.fi/similar-images/common"
	"vincit.fi/similar-images/common/event"
	"vincit.fi/similar-images/common/logger"
)

type Stores struct {
	SimilarityIndex *database.SimilarityIndex
	database        *database.Database
}

func (s *Stores) Close() {
	if s.database != nil {
		s.database.Close()
	}
}

// Exporter returns nil when no export database was configured.
func (s *Stores) Exporter() api.ResultExporter {
	if s.SimilarityIndex == nil {
		return nil
	}
	return s.SimilarityIndex
}

type Services struct {
	ImageLibrary api.ImageLibrary
	ImageLoader  api.ImageLoader
}

type Brokers struct {
	Broker *event.Broker
}

func (s *Brokers) Close() {
	s.Broker.Close()
}

func InitializeEventBrokers(eventBusQueueSize int) *Brokers {
	logger.Debug.Printf("Initialize event brokers...")
	brokers := &Brokers{
		Broker: event.InitBus(eventBusQueueSize),
	}
	logger.Debug.Printf("Event brokers initialized")
	return brokers
}

func InitializeServices(params *common.Params, stores *Stores, brokers *Brokers) (*Services, error) {
	logger.Debug.Printf("Initialize services...")
	resampler, err := phash.ResamplerByName(params.Resampler())
	if err != nil {
		return nil, err
	}
	hasher, err := phash.NewHasher(params.HashConfig(), resampler)
	if err != nil {
		return nil, err
	}

	imageLoader := imageloader.NewImageLoader(params.ExifRotate())
	progressReporter := api.NewSenderProgressReporter(brokers.Broker)
	imageLibrary, err := library.NewLibrary(hasher, imageLoader, params.Threshold(), params.ThreadCount(),
		progressReporter, stores.Exporter())
	if err != nil {
		return nil, err
	}

	services := &Services{
		ImageLibrary: imageLibrary,
		ImageLoader:  imageLoader,
	}
	logger.Debug.Printf("Services initialized with %s, resampler %s and %d workers",
		hasher.Config(), resampler.Name(), params.ThreadCount())
	return services, nil
}

// InitializeStores opens the export database. No database is opened when
// databaseFile is empty.
func InitializeStores(databaseFile string) (*Stores, error) {
	if databaseFile == "" {
		logger.Debug.Printf("No export database configured")
		return &Stores{}, nil
	}

	logger.Debug.Printf("Initialize database...")
	exportDb := database.NewDatabase()
	if err := exportDb.Open(databaseFile); err != nil {
		return nil, err
	}
	if _, err := exportDb.Migrate(); err != nil {
		exportDb.Close()
		return nil, err
	}

	stores := &Stores{
		SimilarityIndex: database.NewSimilarityIndex(exportDb),
		database:        exportDb,
	}
	logger.Debug.Printf("Stores and databases initialized")
	return stores, nil
}

func WriteMetrics(path string) error {
	logger.Debug.Printf("Writing metrics to %s", path)
	return metrics.WriteToTextfile(path)
}
