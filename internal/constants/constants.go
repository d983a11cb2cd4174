package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	ImportTimeout   = 2 * time.Minute
	RecalcTimeout   = 10 * time.Minute
	RequestTimeout  = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBusyTimeoutMS   = 5000
	DBBatchSize       = 100
)

const (
	ShutdownTimeout   = 5 * time.Second
	ReadHeaderTimeout = 10 * time.Second
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// UploadConcurrency bounds how many uploaded files are written to disk at once.
const UploadConcurrency = 4
