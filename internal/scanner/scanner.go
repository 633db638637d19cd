package scanner

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/mtornqvi/go-meter-scan/internal/analyzer"
	"github.com/mtornqvi/go-meter-scan/internal/logger"
	"github.com/mtornqvi/go-meter-scan/internal/observer"
	"github.com/mtornqvi/go-meter-scan/internal/ocr"
	"github.com/mtornqvi/go-meter-scan/internal/repository"
	"github.com/mtornqvi/go-meter-scan/pkg/models"
	"github.com/sirupsen/logrus"
)

// Scanner walks a folder of meter photographs and produces one record per
// file. Each photo is independent; a malformed image becomes a review row
// in the output and never aborts the rest of the batch.
type Scanner struct {
	repo      repository.ImageRepository
	analyzer  analyzer.MeterAnalyzer
	reader    ocr.Reader // nil disables reading extraction
	publisher observer.Subject
	workers   int
}

// New creates a scanner. workers bounds how many photos are decoded and
// analyzed concurrently; zero or negative means a single worker.
func New(repo repository.ImageRepository, a analyzer.MeterAnalyzer, reader ocr.Reader, publisher observer.Subject, workers int) *Scanner {
	if workers <= 0 {
		workers = 1
	}
	return &Scanner{
		repo:      repo,
		analyzer:  a,
		reader:    reader,
		publisher: publisher,
		workers:   workers,
	}
}

// ListPhotos returns the JPEG files in dir, sorted by name.
func ListPhotos(dir string) ([]string, error) {
	var out []string
	for _, pattern := range []string{"*.jpg", "*.JPG", "*.jpeg", "*.JPEG"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out, nil
}

// ScanDirectory analyzes every photo in dir. The returned slice is ordered
// by filename regardless of which worker finished first. The error is
// non-nil only when the directory cannot be listed or the context is
// cancelled; per-photo failures are embedded in their records.
func (s *Scanner) ScanDirectory(ctx context.Context, dir string) ([]models.MeterRecord, error) {
	files, err := ListPhotos(dir)
	if err != nil {
		return nil, err
	}

	records := make([]models.MeterRecord, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = s.ProcessFile(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// ProcessFile analyzes a single photo and folds any failure into the record.
func (s *Scanner) ProcessFile(ctx context.Context, path string) models.MeterRecord {
	start := time.Now()
	record := models.MeterRecord{
		Filename:  filepath.Base(path),
		MeterType: models.MeterTypeUnknown,
	}

	s.notify(ctx, observer.AnalysisStarted, path, 0, true, "")

	if captured, err := s.repo.CaptureTime(ctx, path); err == nil {
		record.CapturedAt = captured
	}

	img, err := s.repo.FetchImage(ctx, path)
	if err != nil {
		record.Error = err.Error()
		s.notify(ctx, observer.AnalysisFailed, path, time.Since(start), false, err.Error())
		return record
	}

	result, err := s.analyzer.Analyze(img)
	if err != nil {
		record.Error = err.Error()
		s.notify(ctx, observer.AnalysisFailed, path, time.Since(start), false, err.Error())
		return record
	}
	record.MeterType = result.MeterType

	if s.reader != nil && result.Region != nil {
		reading, err := s.reader.ExtractReading(ctx, result.Region)
		switch {
		case err == nil:
			record.Reading = reading
		case errors.Is(err, ocr.ErrNoReading):
			// normal outcome; the row goes out with an empty reading
		default:
			logger.WithError(err).WithFields(logrus.Fields{
				"file": record.Filename,
			}).Warn("reading extraction failed")
		}
	}

	s.notify(ctx, observer.AnalysisCompleted, path, time.Since(start), true, "")
	return record
}

func (s *Scanner) notify(ctx context.Context, eventType observer.EventType, source string, elapsed time.Duration, success bool, errMsg string) {
	if s.publisher == nil {
		return
	}
	s.publisher.NotifyObservers(ctx, observer.AnalysisEvent{
		EventType:      eventType,
		Timestamp:      time.Now(),
		Source:         source,
		ProcessingTime: elapsed,
		Success:        success,
		ErrorMessage:   errMsg,
	})
}

// isPhoto filters watch events down to image files.
func isPhoto(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

// Watch analyzes photos as they appear in dir, calling handle for each
// finished record. Create events are debounced so half-written uploads are
// not decoded mid-transfer. Returns when the context is cancelled.
func (s *Scanner) Watch(ctx context.Context, dir string, handle func(models.MeterRecord)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.WithField("dir", dir).Info("Watching for new meter photos")

	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create && isPhoto(ev.Name) {
				pending[ev.Name] = time.Now()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("watch error")
		case <-ticker.C:
			now := time.Now()
			for path, t := range pending {
				if now.Sub(t) > 300*time.Millisecond { // stable
					delete(pending, path)
					handle(s.ProcessFile(ctx, path))
				}
			}
		}
	}
}
