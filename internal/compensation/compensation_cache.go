package compensation

import "time"

const currentCacheTTL = 5 * time.Minute

// CurrentCacheKey is the Redis key holding the cached current-compensation
// response for one employee. The kafka consumer deletes it when a new
// current record is applied.
func CurrentCacheKey(employeeID string) string {
	return "compensation:current:" + employeeID
}
