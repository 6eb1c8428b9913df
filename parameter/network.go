package parameter

import "time"

// Analytics uploader
const (
	AnalyticsQueueSize     = 512
	AnalyticsBatchSize     = 64
	AnalyticsFlushInterval = 30 * time.Second
	AnalyticsWriteTimeout  = 5 * time.Second
	AnalyticsDialTimeout   = 5 * time.Second
)

// High score table and backend
const (
	HighScoreEntries     = 10
	HighScoreNameMax     = 12
	HighScoreCacheTTL    = 30 * time.Second
	HighScoreHTTPTimeout = 5 * time.Second
	HighScoreTokenTTL    = 5 * time.Minute
	HighScoreMaxScore    = 999999999
	HighScoreMaxLevel    = 999
	HighScoreMaxKills    = 99999
	HighScoreMaxSeconds  = 86400
	HighScoreMaxBosses   = 99
)
