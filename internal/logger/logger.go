package logger

import (
	"os"

	"jobmarket/internal/config"
	"jobmarket/internal/metrics"

	log "github.com/sirupsen/logrus"
)

const ErrorTypeField = "error_type"

const (
	ErrorTypeDB        = "db"
	ErrorTypeCache     = "cache"
	ErrorTypeHTTP      = "http"
	ErrorTypeIngestion = "ingestion"
	ErrorTypeWS        = "ws"
)

type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok {
		errorType = "unknown"
	}

	metrics.ErrorsCounter.WithLabelValues(errorType).Inc()
	return nil
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

// Setup configures the standard logrus logger.
func Setup(cfg config.LoggerConfig) {
	log.SetOutput(os.Stdout)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000 -0700",
		})
	}
	log.AddHook(&prometheusHook{})
	log.SetLevel(ParseLevel(cfg.Level))
}

func ParseLevel(level string) log.Level {
	switch level {
	case "DEBUG":
		return log.DebugLevel
	case "WARNING", "WARN":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	case "FATAL":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Component returns an entry tagged with the emitting component.
func Component(name string) *log.Entry {
	return log.WithField("component", name)
}
