package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/mtornqvi/go-meter-scan/internal/analyzer"
	"github.com/mtornqvi/go-meter-scan/internal/config"
	"github.com/mtornqvi/go-meter-scan/internal/logger"
	"github.com/mtornqvi/go-meter-scan/internal/observer"
	"github.com/mtornqvi/go-meter-scan/internal/ocr"
	"github.com/mtornqvi/go-meter-scan/internal/report"
	"github.com/mtornqvi/go-meter-scan/internal/repository"
	"github.com/mtornqvi/go-meter-scan/internal/scanner"
	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

func main() {
	var (
		dataDir     = flag.String("data", "data", "directory holding meter photographs")
		resultsDir  = flag.String("results", "results", "directory for CSV reports")
		calibration = flag.String("calibration", "", "optional YAML calibration file")
		workers     = flag.Int("workers", runtime.NumCPU(), "concurrent photo analyses")
		watch       = flag.Bool("watch", false, "keep running and analyze photos as they arrive")
		noOCR       = flag.Bool("no-ocr", false, "skip reading extraction")
	)
	flag.Parse()

	cal := analyzer.DefaultCalibration()
	if *calibration != "" {
		var err error
		cal, err = config.LoadCalibration(*calibration)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load calibration")
		}
	}

	a, err := analyzer.NewMeterAnalyzerWithOptions(analyzer.DefaultOptions().WithCalibration(cal))
	if err != nil {
		logger.WithError(err).Fatal("Failed to build analyzer")
	}
	defer a.Close()

	var reader ocr.Reader
	if !*noOCR {
		reader = ocr.NewTesseractReader()
	}

	publisher := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	s := scanner.New(repository.NewLocalImageRepository(), a, reader, publisher, *workers)
	sink := report.NewCSVSink(*resultsDir)

	if err := os.MkdirAll(*resultsDir, 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create results directory")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *watch {
		runWatch(ctx, s, sink, *dataDir)
		return
	}

	records, err := s.ScanDirectory(ctx, *dataDir)
	if err != nil {
		logger.WithError(err).Fatal("Scan failed")
	}

	for _, r := range records {
		printRecord(r)
	}
	printSummary(records)

	path, err := sink.WriteRecords(records)
	if err != nil {
		logger.WithError(err).Fatal("Failed to write report")
	}
	fmt.Printf("Report written to %s\n", path)
}

// runWatch analyzes photos as they land in dir. The report is rewritten
// cumulatively after every photo so partial progress survives a crash.
func runWatch(ctx context.Context, s *scanner.Scanner, sink report.Sink, dir string) {
	var records []models.MeterRecord
	err := s.Watch(ctx, dir, func(r models.MeterRecord) {
		printRecord(r)
		records = append(records, r)
		if _, err := sink.WriteRecords(records); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"file": r.Filename,
			}).Error("Failed to write report")
		}
	})
	if err != nil && ctx.Err() == nil {
		logger.WithError(err).Fatal("Watch failed")
	}
}

func printRecord(r models.MeterRecord) {
	label := typeColor(r.MeterType).Sprintf("%-7s", r.MeterType)
	switch {
	case r.Error != "":
		fmt.Printf("%s  %s  %s\n", label, r.Filename, color.RedString("error: %s", r.Error))
	case r.Reading != "":
		fmt.Printf("%s  %s  reading=%s\n", label, r.Filename, r.Reading)
	default:
		fmt.Printf("%s  %s\n", label, r.Filename)
	}
}

func printSummary(records []models.MeterRecord) {
	var hot, cold, unknown, failed int
	for _, r := range records {
		switch {
		case r.Error != "":
			failed++
		case r.MeterType == models.MeterTypeHot:
			hot++
		case r.MeterType == models.MeterTypeCold:
			cold++
		default:
			unknown++
		}
	}
	fmt.Printf("\n%d photos: %s %s %s %s\n",
		len(records),
		color.RedString("%d hot", hot),
		color.BlueString("%d cold", cold),
		color.YellowString("%d unknown", unknown),
		color.MagentaString("%d failed", failed),
	)
}

func typeColor(t models.MeterType) *color.Color {
	switch t {
	case models.MeterTypeHot:
		return color.New(color.FgRed)
	case models.MeterTypeCold:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgYellow)
	}
}
