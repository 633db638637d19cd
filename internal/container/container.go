package container

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mtornqvi/go-meter-scan/internal/analyzer"
	"github.com/mtornqvi/go-meter-scan/internal/config"
	"github.com/mtornqvi/go-meter-scan/internal/factory"
	"github.com/mtornqvi/go-meter-scan/internal/logger"
	"github.com/mtornqvi/go-meter-scan/internal/observer"
	"github.com/mtornqvi/go-meter-scan/internal/ocr"
	"github.com/mtornqvi/go-meter-scan/internal/repository"
	"github.com/mtornqvi/go-meter-scan/internal/service"
	"github.com/mtornqvi/go-meter-scan/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	meterAnalyzer   analyzer.MeterAnalyzer
	imageRepository repository.ImageRepository
	analysisService service.MeterAnalysisService
	metrics         *observer.MetricsObserver
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cal := analyzer.DefaultCalibration()
	if cfg.CalibrationFile != "" {
		cal, err = config.LoadCalibration(cfg.CalibrationFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load calibration: %w", err)
		}
	}

	components := factory.NewComponentFactory(factory.AzureCredentials{
		AccountName: os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AccountKey:  os.Getenv("AZURE_STORAGE_KEY"),
	})

	meterAnalyzer, err := components.AnalyzerFactory.CreateAnalyzer(factory.StandardAnalyzer, cal)
	if err != nil {
		return nil, err
	}

	storageType := factory.StorageType(getEnvOrDefault("STORAGE_BACKEND", string(factory.HTTPStorage)))
	fetcher, err := components.StorageFactory.CreateStorage(storageType)
	if err != nil {
		return nil, err
	}

	var reader ocr.Reader
	if os.Getenv("OCR_DISABLED") != "true" {
		reader = ocr.NewTesseractReader()
	}

	publisher := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	imageRepository := repository.NewHTTPImageRepository(fetcher)
	analysisService := service.NewMeterAnalysisService(imageRepository, meterAnalyzer, reader, publisher)
	handler := transport.NewHandler(analysisService, metrics, cfg)

	return &Container{
		config:          cfg,
		meterAnalyzer:   meterAnalyzer,
		imageRepository: imageRepository,
		analysisService: analysisService,
		metrics:         metrics,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases analyzer resources.
func (c *Container) Close() error {
	return c.meterAnalyzer.Close()
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
