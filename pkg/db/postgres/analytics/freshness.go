package analytics

import (
	"context"
	"fmt"
	"time"
)

// LatestEventTime returns the newest raw event timestamp, or nil when the table is empty.
func (db *DB) LatestEventTime(ctx context.Context) (*time.Time, error) {
	var ts *time.Time
	if err := db.Executor.QueryRow(ctx, "SELECT max(event_timestamp) AS ts FROM raw_events").Scan(&ts); err != nil {
		return nil, fmt.Errorf("latest event: %w", err)
	}
	return ts, nil
}
