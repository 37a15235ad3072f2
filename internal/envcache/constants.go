package envcache

import "time"

const (
	// fetchTimeout bounds one upstream API call.
	fetchTimeout = 10 * time.Second

	// fetchDelay spaces sequential prefetch calls to stay under upstream
	// rate limits.
	fetchDelay = 100 * time.Millisecond

	// memoryCacheSize caps the in-process front cache per service.
	memoryCacheSize = 512
)

// Log Messages
const (
	LogMsgCacheHit        = "Environmental cache hit"
	LogMsgFetched         = "Fetched environmental data from provider"
	LogMsgFetchFailed     = "Provider fetch failed, using fallback"
	LogMsgPersistFailed   = "Failed to persist fetched record"
	LogMsgPrefetchStarted = "Prefetch started"
	LogMsgPrefetchDayErr  = "Prefetch skipped day after error"
	LogMsgPrefetchDone    = "Prefetch finished"
)
