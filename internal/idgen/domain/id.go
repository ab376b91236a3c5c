package domain

import (
	"strconv"
	"time"
)

// IDInfo is the decoded view of a generated ID.
type IDInfo struct {
	ID        int64     `json:"id"`
	IDString  string    `json:"id_str"`
	UnixMilli int64     `json:"unix_ms"`
	Time      time.Time `json:"time"`
	WorkerID  int64     `json:"worker_id"`
	Sequence  int64     `json:"sequence"`
}

// FormatID renders an ID as a decimal string. JSON consumers that parse
// numbers as float64 lose precision above 2^53, so responses carry both forms.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
