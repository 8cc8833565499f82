// Package queue is a durable job queue on Redis with retry, exponential
// backoff and bounded history.
//
// Layout per queue name:
//
//	queue:<name>:job:<id>   hash  name, payload, attempts, maxAttempts, state, failedReason, leaseUntil, timestamps
//	queue:<name>:wait       list  ids ready to run (LPUSH in, pop from the right)
//	queue:<name>:active     list  ids being processed, each held by a renewable lease
//	queue:<name>:delayed    zset  ids waiting for a retry, scored by due time (unix ms)
//	queue:<name>:completed  list  newest first, trimmed to the retention limit
//	queue:<name>:failed     list  newest first, trimmed to the retention limit
package queue

import (
	"encoding/json"
	"strconv"
	"time"
)

// JobState is where a job currently lives.
type JobState string

const (
	StateWaiting   JobState = "waiting"
	StateActive    JobState = "active"
	StateDelayed   JobState = "delayed"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
)

// Job is one unit of work.
type Job struct {
	ID           string
	Name         string
	Payload      json.RawMessage
	Attempts     int
	MaxAttempts  int
	State        JobState
	FailedReason string
	CreatedAt    time.Time
	ProcessedAt  time.Time
	FinishedAt   time.Time
}

// Decode unmarshals the payload into v.
func (j *Job) Decode(v any) error {
	return json.Unmarshal(j.Payload, v)
}

func jobFromHash(id string, h map[string]string) *Job {
	attempts, _ := strconv.Atoi(h["attempts"])
	maxAttempts, _ := strconv.Atoi(h["maxAttempts"])
	return &Job{
		ID:           id,
		Name:         h["name"],
		Payload:      json.RawMessage(h["payload"]),
		Attempts:     attempts,
		MaxAttempts:  maxAttempts,
		State:        JobState(h["state"]),
		FailedReason: h["failedReason"],
		CreatedAt:    msToTime(h["createdAt"]),
		ProcessedAt:  msToTime(h["processedAt"]),
		FinishedAt:   msToTime(h["finishedAt"]),
	}
}

func msToTime(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
