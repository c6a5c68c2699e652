// Package logger provides structured logging utilities built on Go's standard slog package.
// It offers environment-specific configurations, context-aware attribute extraction,
// and a set of pre-built attributes for common logging scenarios.
//
// # Features
//
//   - Built on Go's standard slog for compatibility and performance
//   - Environment-specific configurations (development, staging, production)
//   - Context-aware attribute extraction for request-scoped data
//   - Support for both JSON and text output formats
//   - Type-safe attribute creation with nil safety
//
// # Basic Usage
//
// Create loggers using the factory function with various configuration options:
//
//	import "github.com/dmitrymomot/authkit/core/logger"
//
//	// Create a development logger
//	log := logger.New(
//		logger.WithDevelopment("authd"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	// Create a production logger
//	log := logger.New(
//		logger.WithProduction("authd"),
//		logger.WithJSONFormatter(),
//	)
//
//	// Use the logger
//	log.Info("Session engine starting",
//		logger.Component("session"),
//		logger.Event("startup"),
//	)
//
// # Environment Configurations
//
// The package provides pre-configured setups for different environments:
//
//	// Development: text format, debug level, stdout
//	devLogger := logger.New(logger.WithDevelopment("authd"))
//
//	// Production: JSON format, info level, stdout
//	prodLogger := logger.New(logger.WithProduction("authd"))
//
//	// Staging: JSON format, info level, stdout
//	stageLogger := logger.New(logger.WithStaging("authd"))
//
//	// Custom configuration
//	customLogger := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "auth")),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Context-Aware Logging
//
// Extract and inject attributes automatically from context values:
//
//	// Create logger with context extractors
//	log := logger.New(
//		logger.WithProduction("authd"),
//		logger.WithContextValue("request_id", requestIDKey),
//	)
//
//	// Log with automatic context attribute injection
//	log.InfoContext(ctx, "Processing token refresh")
//
// Custom extraction logic registers through WithContextExtractors:
//
//	func sessionExtractor(ctx context.Context) (slog.Attr, bool) {
//		if sess, ok := ctx.Value(sessionKey).(*session.Session); ok {
//			return logger.SessionID(sess.ID.String()), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(
//		logger.WithProduction("authd"),
//		logger.WithContextExtractors(sessionExtractor),
//	)
//
// # Attribute Helpers
//
// The package provides helper functions for creating common attributes:
//
//	// Error handling
//	log.Error("Session grant failed",
//		logger.Error(err),
//		logger.Component("session"),
//		logger.UserID(userID.String()),
//	)
//
//	// Multiple errors
//	log.Error("Revocation left index entries behind",
//		logger.Errors(err1, err2),
//		logger.SessionID(sessID.String()),
//	)
//
//	// Timing and counters
//	start := time.Now()
//	// ... sweep expired sessions ...
//	log.Info("Sweep completed",
//		logger.Elapsed(start),
//		logger.Count("purged", purged),
//		logger.Component("sweeper"),
//	)
//
// # Global Logger Setup
//
// Set up a global default logger for your application:
//
//	func initLogging() {
//		var log *slog.Logger
//
//		switch os.Getenv("APP_ENV") {
//		case "production":
//			log = logger.New(logger.WithProduction("authd"))
//		case "staging":
//			log = logger.New(logger.WithStaging("authd"))
//		default:
//			log = logger.New(logger.WithDevelopment("authd"))
//		}
//
//		// Set as global default
//		logger.SetAsDefault(log)
//	}
//
// # Testing with Custom Output
//
// Capture logs during testing:
//
//	func TestLogging(t *testing.T) {
//		var buf bytes.Buffer
//		log := logger.New(
//			logger.WithJSONFormatter(),
//			logger.WithOutput(&buf),
//		)
//
//		log.Info("Test message", logger.Component("test"))
//
//		output := buf.String()
//		assert.Contains(t, output, "Test message")
//		assert.Contains(t, output, `"component":"test"`)
//	}
package logger
