package constants

import "time"

const (
	StalenessTTL           = 12 * time.Hour
	ContestSyncInterval    = 90 * time.Minute
	ContestPurgeInterval   = 60 * time.Minute
	HackathonSyncInterval  = 90 * time.Minute
	HackathonPurgeInterval = 60 * time.Minute
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	SyncCycleTimeout   = 5 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	LeaderboardTopN     = 3
	LeaderboardPageSize = 5
	MaxUpdatesPerDay    = 50
	RefreshConcurrency  = 4
)
