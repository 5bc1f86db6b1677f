// Command purge-run-cache scans the run cache for entries that no longer
// decode into a dungeon run and deletes them after confirmation. The cache
// is never authoritative, so purged runs reload from the document store.
//
//	DUNGEON_REDIS_ADDR=redis://localhost:6379 go run scripts/purge-run-cache.go [-y]
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/redis"
	runcache "github.com/KirkDiggler/rpg-dungeon/internal/repositories/run_cache"
)

func main() {
	addr := os.Getenv("DUNGEON_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	assumeYes := len(os.Args) > 1 && os.Args[1] == "-y"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, addr, assumeYes); err != nil {
		slog.Error("Purge failed", "addr", addr, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, addr string, assumeYes bool) error {
	client, err := redis.New(&redis.Config{Addr: addr, Timeout: 5 * time.Second})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := redis.Ping(ctx, client); err != nil {
		return err
	}

	findings, scanned, err := runcache.Audit(ctx, client)
	if err != nil {
		return err
	}
	fmt.Printf("scanned %d run cache entries on %s, %d corrupt\n", scanned, addr, len(findings))
	if len(findings) == 0 {
		return nil
	}

	keys := make([]string, len(findings))
	for i, f := range findings {
		keys[i] = f.Key
		fmt.Printf("  %s: %s\n", f.Key, f.Reason)
	}

	if !assumeYes && !confirm(fmt.Sprintf("delete %d entries?", len(keys))) {
		fmt.Println("nothing deleted")
		return nil
	}

	deleted, err := client.Del(ctx, keys...).Result()
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d entries\n", deleted)
	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
