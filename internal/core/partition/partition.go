package partition

import "hash/fnv"

// Count is the fixed number of logical partitions.
// Worker shards are derived from it, so it never changes between deployments.
const Count = 256

// For returns the partition ID for a given device ID.
// Stable and deterministic: same deviceID always maps to the same partition.
func For(deviceID string) int {
	h := fnv.New32a()
	h.Write([]byte(deviceID))
	return int(h.Sum32() % Count)
}

// Shard maps a device onto one of n workers. Every event of a device lands on
// the same worker, which is what lets a worker own the device's hot state
// without locks. n must be > 0.
func Shard(deviceID string, n int) int {
	return For(deviceID) % n
}
