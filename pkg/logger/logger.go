package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/timetable-cpsat-engine/pkg/config"
	"github.com/noah-isme/timetable-cpsat-engine/pkg/middleware/requestid"
)

// New builds the service logger: production JSON config in production,
// development config otherwise, with level and encoding overridable via
// LOG_LEVEL / LOG_FORMAT. Every line carries the service name so engine
// logs can be filtered out of a shared sink.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.Log.Format == "console" {
		zapCfg.Encoding = "console"
	} else {
		zapCfg.Encoding = "json"
	}

	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build(zap.Fields(zap.String("service", "timetable-cpsat-engine")))
}

// accessLogSkip lists paths too chatty to access-log: the Prometheus scrape
// and the liveness probe.
var accessLogSkip = map[string]struct{}{
	"/metrics":       {},
	"/api/v1/health": {},
}

// GinMiddleware logs one line per request. A generate call can legitimately
// hold the connection for minutes while the solver runs, so latency is
// recorded as float seconds rather than a duration string, and 5xx
// responses are raised to error level.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if _, skip := accessLogSkip[c.Request.URL.Path]; skip {
			return
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Float64("latency_seconds", time.Since(start).Seconds()),
			zap.String("ip", c.ClientIP()),
		}
		if reqID := requestid.Value(c); reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}

		if status >= 500 {
			l.Error("http_request", fields...)
			return
		}
		l.Info("http_request", fields...)
	}
}
