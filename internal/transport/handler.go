package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mtornqvi/go-meter-scan/internal/config"
	apperrors "github.com/mtornqvi/go-meter-scan/internal/errors"
	"github.com/mtornqvi/go-meter-scan/internal/logger"
	"github.com/mtornqvi/go-meter-scan/internal/observer"
	"github.com/mtornqvi/go-meter-scan/internal/service"
	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// NewHandler builds the HTTP API around the analysis service. metrics may be
// nil, in which case /metrics reports an empty document.
func NewHandler(svc service.MeterAnalysisService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.GET("/metrics", metricsReport(metrics))
	r.POST("/analyze", analyzeMeter(svc, cfg))

	return r
}

func analyzeMeter(svc service.MeterAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing meter analysis request")

		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		if err := svc.ValidateImageSource(req.URL); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Invalid image source")
			respondError(c, apperrors.GetStatusCode(err), "invalid image source", err)
			return
		}

		// Query parameter takes precedence over the JSON body.
		if q := c.Query("extract_reading"); q != "" {
			req.ExtractReading = q == "true"
		}

		var (
			result *models.AnalysisResponse
			err    error
		)
		if req.ExtractReading {
			result, err = svc.AnalyzeMeterWithReading(ctx, req.URL, req.ExpectedReading)
		} else {
			result, err = svc.AnalyzeMeter(ctx, req.URL)
		}
		if err != nil {
			var svcErr *apperrors.AppError
			if errors.Is(err, context.DeadlineExceeded) {
				svcErr = apperrors.NewTimeoutError("Analysis timeout", err)
			} else if !errors.As(err, &svcErr) {
				svcErr = apperrors.NewInternalError("Analysis failed", err)
			}

			logger.WithError(svcErr).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Meter analysis failed")

			respondError(c, svcErr.StatusCode, "analysis failed", svcErr)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                req.URL,
			"meter_type":         result.MeterType,
			"region_found":       result.Region != nil,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Meter analysis completed successfully")

		c.JSON(http.StatusOK, result)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func metricsReport(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, metrics.GetMetrics())
	}
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
