package config

import "time"

// Application constants for the SKPG reporting service
const (
	// Application Info
	AppName    = "SKPG Insight"
	AppVersion = "1.4.0"
	AppVendor  = "Universiti Malaya"

	// Survey workbook layout
	WorkbookPattern  = `^Data SKPG (\d{4})\.xlsx$`
	WorkbookPrefix   = "Data SKPG "
	WorkbookSheet    = "DATASET"
	ParquetExtension = ".parquet"

	// Reporting defaults
	ResponseRateTarget = 90.0

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout  = 30 * time.Second
	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second

	// File Paths (relative to executable)
	DefaultDataDir = "data"
	DefaultLogsDir = "logs"
	DefaultWebDir  = "web"

	// Dataset ingestion
	DefaultRescanSchedule  = "@every 15m"
	DefaultLoadConcurrency = 4
	DefaultLoadTimeout     = 10 * time.Minute
	DefaultConvertTimeout  = 5 * time.Minute

	// WebSocket Buffer Sizes
	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024

	// Log Settings
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
	MaxLogFileSize    = 100 * 1024 * 1024 // 100MB
	MaxLogFileAge     = 30                // days
	MaxLogFileBackups = 10

	// API Endpoints (internal)
	APIBasePath       = "/api"
	DashboardEndpoint = "/api/dashboard"
	FacultyEndpoint   = "/api/faculty"
	DatasetEndpoint   = "/api/dataset"
	HealthEndpoint    = "/api/health"
	MetricsEndpoint   = "/metrics"
	WebSocketEndpoint = "/ws"
)
