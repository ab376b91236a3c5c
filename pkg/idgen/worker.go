package idgen

import "github.com/spaolacci/murmur3"

// WorkerIDFromName derives a worker ID from a stable name such as a hostname
// or pod name. Distinct names may still collide; uniqueness across the fleet
// remains the deployer's responsibility.
func WorkerIDFromName(name string) int64 {
	return int64(murmur3.Sum32([]byte(name)) % (MaxWorkerID + 1))
}
