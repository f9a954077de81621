// FILE: lixenwraith/dlog/cmd/simple/main.go
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/dlog"
	"github.com/lixenwraith/dlog/lockorder"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[dlog]
  mode = "debug,file"
  level = 10 # all
  style = "time_inline"
  file = "./simple.log"
  append = false
  debug_target = "stdout"
  internal_errors_to_stderr = true
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	// --- Setup Config ---
	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
	}

	cfg, err := dlog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v. Using defaults.\n", err)
		cfg = dlog.DefaultConfig()
	}

	// --- Initialize Logger ---
	if err := dlog.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger initialized.")

	// Save the merged configuration (defaults + file overrides) back
	if err := dlog.Default().GetConfig().Save(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save configuration to '%s': %v\n", configFile, err)
	} else {
		fmt.Printf("Configuration saved to: %s\n", configFile)
	}

	// --- Logging ---
	dlog.Print(dlog.LevelState, "Application starting\n")
	dlog.Print(dlog.LevelClients, dlog.Here("Client %s connected\n"), "10.0.0.7")
	dlog.Print(dlog.LevelIntWarn, "Threshold at %.2f\n", 0.95)
	dlog.Dump(dlog.LevelIntInfo, "config", cfg)

	// --- Lock ordering ---
	region := lockorder.MustNew(0)
	clients := lockorder.MustNew(1)

	// Correct order: outer before inner
	clients.LockChecked(dlog.Default(), lockorder.DefaultWarning)
	region.LockChecked(dlog.Default(), lockorder.DefaultWarning)
	region.Unlock()
	clients.Unlock()

	// Inverted order is reported once
	region.Lock()
	clients.LockChecked(dlog.Default(), lockorder.DefaultWarning)
	clients.Unlock()
	region.Unlock()

	// Logging from goroutines
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			dlog.Print(dlog.LevelClients, "Goroutine %d started\n", id)
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			dlog.Print(dlog.LevelClients, dlog.Here("Goroutine %d finished\n"), id)
		}(i)
	}
	wg.Wait()

	// --- Close Logger ---
	if err := dlog.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger close error: %v\n", err)
	} else {
		fmt.Println("Logger closed.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check './simple.log' and the saved config '%s'.\n", configFile)
}
