// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis revoked-token cache keys.
const AuthCachePrefix = "auth:revoked:"

// TrainerCachePrefix is the prefix for cached public trainer profiles.
const TrainerCachePrefix = "trainer:"

// TrainerCacheTTL is the time-to-live for cached trainer profiles.
const TrainerCacheTTL = 10 * time.Minute
