package idgen

import "time"

const (
	// Configuration for 64-bit ID:
	// 1 bit: Unused (sign bit)
	// 41 bits: Timestamp (milliseconds since the custom epoch) - gives ~69 years
	// 10 bits: Worker ID - gives 1024 workers
	// 12 bits: Sequence - gives 4096 IDs per millisecond per worker

	timestampBits = 41
	workerBits    = 10
	sequenceBits  = 12

	MaxWorkerID  = -1 ^ (-1 << workerBits)
	MaxSequence  = -1 ^ (-1 << sequenceBits)
	MaxTimestamp = -1 ^ (-1 << timestampBits)

	workerShift    = sequenceBits
	timestampShift = sequenceBits + workerBits
)

// Encode packs the three fields into an ID. Fields are not validated.
func Encode(timestamp, workerID, sequence int64) int64 {
	return (timestamp << timestampShift) |
		(workerID << workerShift) |
		sequence
}

// Decode splits an ID back into its fields.
func Decode(id int64) (timestamp, workerID, sequence int64) {
	timestamp = (id >> timestampShift) & MaxTimestamp
	workerID = (id >> workerShift) & MaxWorkerID
	sequence = id & MaxSequence
	return timestamp, workerID, sequence
}

// Parts is a decoded ID resolved against its custom epoch.
type Parts struct {
	// UnixMilli is the absolute creation time in milliseconds since the Unix epoch.
	UnixMilli int64
	// Timestamp is the raw 41-bit field (milliseconds since the custom epoch).
	Timestamp int64
	WorkerID  int64
	Sequence  int64
}

// Time returns the creation time of the ID.
func (p Parts) Time() time.Time {
	return time.UnixMilli(p.UnixMilli)
}

// Decompose decodes id and resolves its timestamp against epoch.
// IDs with the sign bit set were never produced by a generator and are rejected.
func Decompose(id, epoch int64) (Parts, error) {
	if id < 0 {
		return Parts{}, ErrNegativeID
	}

	ts, worker, seq := Decode(id)
	return Parts{
		UnixMilli: ts + epoch,
		Timestamp: ts,
		WorkerID:  worker,
		Sequence:  seq,
	}, nil
}
