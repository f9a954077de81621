// FILE: lixenwraith/dlog/cmd/stress/main.go
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/dlog"
	"github.com/lixenwraith/dlog/lockorder"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 2000
	numWorkers     = 64
)

const configFile = "stress_config.toml"

// Example TOML content for stress test
var tomlContent = `
# Example stress_config.toml
[dlog]
  mode = "file"
  level = 10
  style = "no_file_names"
  file = "./stress.log"
  append = false
  internal_errors_to_stderr = true
`

var levels = []int64{
	dlog.LevelState,
	dlog.LevelClients,
	dlog.LevelSockErr,
	dlog.LevelIntWarn,
	dlog.LevelIntInfo,
	dlog.LevelSockInfo,
}

var (
	logger *dlog.Logger
	locks  [3]*lockorder.Mutex
)

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity with lock traffic
func logBurst(burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msg := generateRandomMessage(rand.Intn(maxMessageSize) + 10)
		logger.Print(level, dlog.Here("wkr=%d bst=%d seq=%d %s\n"), burstID%numWorkers, burstID, i, msg)

		// Take two random locks in random order; inversions are reported.
		// The second one is only tried so an inversion never becomes a real deadlock.
		a, b := locks[rand.Intn(len(locks))], locks[rand.Intn(len(locks))]
		if a == b {
			continue
		}
		a.LockChecked(logger, lockorder.DefaultWarning)
		logger.Validate(b, lockorder.DefaultWarning)
		if b.TryLock() {
			b.Unlock()
		}
		a.Unlock()
	}
}

// worker goroutine function
func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
		}
	}
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created dummy config file: %s\n", configFile)

	cfg, err := dlog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v.\n", err)
		os.Exit(1)
	}

	logger = dlog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger initialized. Records will be written to: %s\n", cfg.File)

	for i := range locks {
		locks[i] = lockorder.MustNew(lockorder.Level(i))
	}

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d records/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	burstChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts)
	}

	startTime := time.Now()
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			goto endLoop
		}
	}
endLoop:
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		perSec := float64(finalCompleted*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate records/sec: %.2f\n", perSec)
	}

	stats := logger.Stats()
	fmt.Printf("Records: %d, write errors: %d\n", stats.TotalRecords, stats.WriteErrors)

	if err := logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger close error: %v\n", err)
	} else {
		fmt.Println("Logger closed.")
	}
	fmt.Printf("Check '%s' for 'Potential deadlock' reports.\n", cfg.File)
}
