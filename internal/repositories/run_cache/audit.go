package runcache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-dungeon/internal/redis"
)

const auditScanCount = 100

// Finding is a cached entry that can no longer serve reads
type Finding struct {
	Key    string
	Reason string
}

// Inspect returns why a cached payload is unusable, or "" when it is fine
func Inspect(key string, raw []byte) string {
	var run entities.DungeonRun
	if err := json.Unmarshal(raw, &run); err != nil {
		return "undecodable json: " + err.Error()
	}
	switch {
	case Key(&run) != key:
		return fmt.Sprintf("payload belongs to run %q", run.RunID)
	case !run.Status.IsValid():
		return fmt.Sprintf("unknown status %q", run.Status)
	case run.RoomAt(run.Position) == nil:
		return fmt.Sprintf("position %d:%d is off the room graph", run.Position.Floor, run.Position.Room)
	}
	return ""
}

// Audit scans every cached run and returns the unusable entries along with
// the number of keys examined. Keys that expire mid-scan are skipped.
func Audit(ctx context.Context, client redisclient.Client) ([]Finding, int, error) {
	var (
		findings []Finding
		scanned  int
	)

	iter := client.Scan(ctx, 0, KeyPrefix+"*", auditScanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		scanned++

		raw, err := client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redisclient.Nil) {
				continue
			}
			return nil, scanned, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read %s", key)
		}
		if reason := Inspect(key, raw); reason != "" {
			findings = append(findings, Finding{Key: key, Reason: reason})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, scanned, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan run cache")
	}
	return findings, scanned, nil
}
