// FILE: lixenwraith/dlog/cmd/reconfig/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dlog"
)

const configFile = "reconfig.toml"

// Simulate rapid reconfiguration while records are written
func main() {
	var count atomic.Int64

	logger, err := dlog.NewBuilder().
		ModeString("file").
		File("reconfig.log", false).
		LevelString("all").
		Build()
	if err != nil {
		fmt.Printf("Initial build error: %v\n", err)
		return
	}
	defer logger.Close()

	cfg := logger.GetConfig()
	if err := cfg.Save(configFile); err != nil {
		fmt.Printf("Save error: %v\n", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := logger.WatchConfig(ctx, configFile); err != nil {
		fmt.Printf("Watch error: %v\n", err)
		return
	}

	// Log something constantly
	go func() {
		for i := 0; ; i++ {
			logger.Print(dlog.LevelIntInfo, "Test record %d\n", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	// Alternate style and level, half through overrides and half through the watched file
	styles := []string{"", "time_inline", "no_file_names", "no_tab_separator"}
	for i := 0; i < 10; i++ {
		style := styles[i%len(styles)]
		if i%2 == 0 {
			err = logger.ApplyConfigString("style="+style, fmt.Sprintf("level=%d", 8+i%3))
		} else {
			cfg.Style = style
			cfg.Level = int64(8 + i%3)
			err = cfg.Save(configFile)
		}
		if err != nil {
			fmt.Printf("Reconfigure error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	stats := logger.Stats()
	fmt.Printf("Total records attempted: %d, written: %d, backups: %d, write errors: %d\n",
		count.Load(), stats.TotalRecords, stats.TotalBackups, stats.WriteErrors)

	_ = os.Remove(configFile)
}
