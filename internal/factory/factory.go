package factory

import (
	"fmt"

	"github.com/mtornqvi/go-meter-scan/internal/analyzer"
	"github.com/mtornqvi/go-meter-scan/internal/storage"
)

// AnalyzerType represents different types of meter analyzers
type AnalyzerType string

const (
	// StandardAnalyzer classifies the meter and locates its display region
	StandardAnalyzer AnalyzerType = "standard"
	// ClassifyOnlyAnalyzer answers only the hot/cold question
	ClassifyOnlyAnalyzer AnalyzerType = "classify_only"
)

// StorageType represents different types of storage backends
type StorageType string

const (
	// HTTPStorage for HTTP-based photo fetching
	HTTPStorage StorageType = "http"
	// AzureStorage for Azure blob storage
	AzureStorage StorageType = "azure"
	// LocalStorage for the local file system
	LocalStorage StorageType = "local"
)

// AnalyzerFactory creates meter analyzers
type AnalyzerFactory interface {
	CreateAnalyzer(analyzerType AnalyzerType, cal analyzer.Calibration) (analyzer.MeterAnalyzer, error)
}

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateStorage(storageType StorageType) (storage.ImageFetcher, error)
}

// analyzerFactory implements AnalyzerFactory
type analyzerFactory struct{}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory() AnalyzerFactory {
	return &analyzerFactory{}
}

// CreateAnalyzer creates an analyzer of the specified type, calibrated with
// the given color ranges.
func (f *analyzerFactory) CreateAnalyzer(analyzerType AnalyzerType, cal analyzer.Calibration) (analyzer.MeterAnalyzer, error) {
	switch analyzerType {
	case StandardAnalyzer:
		return analyzer.NewMeterAnalyzerWithOptions(analyzer.DefaultOptions().WithCalibration(cal))
	case ClassifyOnlyAnalyzer:
		return analyzer.NewMeterAnalyzerWithOptions(analyzer.ClassifyOnlyOptions().WithCalibration(cal))
	default:
		return nil, fmt.Errorf("unsupported analyzer type: %s", analyzerType)
	}
}

// AzureCredentials carries the shared-key pair for blob access.
type AzureCredentials struct {
	AccountName string
	AccountKey  string
}

// storageFactory implements StorageFactory
type storageFactory struct {
	azure AzureCredentials
}

// NewStorageFactory creates a new storage factory. The Azure credentials may
// be zero when only http or local backends are used.
func NewStorageFactory(azure AzureCredentials) StorageFactory {
	return &storageFactory{azure: azure}
}

// CreateStorage creates a storage implementation based on the specified type
func (f *storageFactory) CreateStorage(storageType StorageType) (storage.ImageFetcher, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPImageFetcher(), nil
	case LocalStorage:
		return storage.NewLocalImageFetcher(), nil
	case AzureStorage:
		if f.azure.AccountName == "" || f.azure.AccountKey == "" {
			return nil, fmt.Errorf("azure storage requires account credentials")
		}
		blob, err := storage.NewAzureStorage(f.azure.AccountName, f.azure.AccountKey)
		if err != nil {
			return nil, err
		}
		return blob, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	AnalyzerFactory AnalyzerFactory
	StorageFactory  StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(azure AzureCredentials) *ComponentFactory {
	return &ComponentFactory{
		AnalyzerFactory: NewAnalyzerFactory(),
		StorageFactory:  NewStorageFactory(azure),
	}
}
