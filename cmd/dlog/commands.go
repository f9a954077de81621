// FILE: lixenwraith/dlog/cmd/dlog/commands.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/lixenwraith/dlog"
	"github.com/lixenwraith/dlog/lockorder"
	"github.com/urfave/cli/v3"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a configuration file with default settings",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing file",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.String("config")
			if _, err := os.Stat(path); err == nil && !c.Bool("force") {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := dlog.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Println(okStyle.Render("Configuration initialized at " + path))
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the effective configuration",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := dlog.NewConfigFromFile(c.String("config"))
			if err != nil {
				return err
			}
			printBlock("dlog "+c.String("config"), configPairs(cfg))
			return nil
		},
	}
}

func printCommand() *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "Write records through a logger built from the configuration",
		ArgsUsage: "<message>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "at",
				Usage: "Record level, by name or number",
				Value: "state",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Override a setting as key=value",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			level, err := parseLevel(c.String("at"))
			if err != nil {
				return err
			}

			logger, err := loggerFromConfig(c.String("config"), c.StringSlice("set"))
			if err != nil {
				return err
			}
			defer logger.Close()

			for _, msg := range c.Args().Slice() {
				logger.Print(level, "%s\n", msg)
			}

			stats := logger.Stats()
			printBlock("print", [][2]string{
				{"records written", strconv.FormatUint(stats.TotalRecords, 10)},
				{"file backups", strconv.FormatUint(stats.TotalBackups, 10)},
				{"file open failures", strconv.FormatUint(stats.FileOpenFailures, 10)},
				{"write errors", strconv.FormatUint(stats.WriteErrors, 10)},
				{"active sinks", dlog.ModeString(logger.GetMode())},
			})
			return nil
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Check a lock acquisition against a set of held locks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "held",
				Usage: "Comma list of held lock levels, innermost is 0",
			},
			&cli.StringFlag{
				Name:     "acquire",
				Usage:    "Level of the lock about to be taken",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			held, err := parseLockLevels(c.String("held"))
			if err != nil {
				return err
			}
			candidateLevel, err := parseLockLevel(c.String("acquire"))
			if err != nil {
				return err
			}
			candidate, err := lockorder.New(candidateLevel)
			if err != nil {
				return err
			}

			logger, err := dlog.NewBuilder().
				Level(dlog.LevelAll).
				Style(dlog.StyleNoFileNames).
				DebugTarget("stdout").
				Build()
			if err != nil {
				return err
			}

			mutexes := make([]*lockorder.Mutex, 0, len(held))
			for _, lvl := range held {
				m, err := lockorder.New(lvl)
				if err != nil {
					return err
				}
				if m.Bit() == candidate.Bit() {
					continue
				}
				m.Lock()
				mutexes = append(mutexes, m)
			}
			defer func() {
				for i := len(mutexes) - 1; i >= 0; i-- {
					mutexes[i].Unlock()
				}
			}()

			before := logger.Stats().TotalRecords
			history := logger.Validate(candidate, lockorder.DefaultWarning)
			warned := logger.Stats().TotalRecords > before

			verdict := okStyle.Render("ordered")
			if warned {
				verdict = warnStyle.Render("potential deadlock")
			}
			printBlock("lock history", [][2]string{
				{"held", fmt.Sprintf("0x%08x", history)},
				{"candidate", fmt.Sprintf("0x%08x", candidate.Bit())},
				{"bits", colorHistory(dlog.RenderHistory(history, candidate.Bit()))},
				{"verdict", verdict},
			})
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Write a record every interval and apply configuration changes as they are saved",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Time between records",
				Value: time.Second,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.String("config")
			logger, err := loggerFromConfig(path, nil)
			if err != nil {
				return err
			}
			defer logger.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := logger.WatchConfig(ctx, path); err != nil {
				return err
			}
			fmt.Println(okStyle.Render("Watching " + path + ", interrupt to stop"))

			ticker := time.NewTicker(c.Duration("interval"))
			defer ticker.Stop()

			for n := 1; ; n++ {
				select {
				case <-ctx.Done():
					logger.Print(dlog.LevelState, "Watch stopped after %d records\n", n-1)
					return nil
				case <-ticker.C:
					logger.Print(dlog.LevelState, dlog.Here("Tick %d level=%d style=%s\n"),
						n, logger.GetLevel(), dlog.StyleString(logger.GetStyle()))
				}
			}
		},
	}
}

func loggerFromConfig(path string, overrides []string) (*dlog.Logger, error) {
	cfg, err := dlog.NewConfigFromFile(path)
	if err != nil {
		return nil, err
	}

	logger := dlog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := logger.ApplyConfigString(overrides...); err != nil {
			_ = logger.Close()
			return nil, err
		}
	}
	return logger, nil
}

func configPairs(cfg *dlog.Config) [][2]string {
	style := cfg.Style
	if style == "" {
		style = "none"
	}
	file := cfg.File
	if file == "" {
		file = "(none)"
	}
	return [][2]string{
		{"mode", cfg.Mode},
		{"level", strconv.FormatInt(cfg.Level, 10)},
		{"style", style},
		{"file", file},
		{"append", strconv.FormatBool(cfg.Append)},
		{"console_target", cfg.ConsoleTarget},
		{"debug_target", cfg.DebugTarget},
		{"sanitize", cfg.Sanitize},
		{"internal_errors_to_stderr", strconv.FormatBool(cfg.InternalErrorsToStderr)},
	}
}

func parseLevel(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	return dlog.Level(s)
}

func parseLockLevel(s string) (lockorder.Level, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid lock level '%s': %w", s, err)
	}
	if lockorder.Level(n) > lockorder.MaxLevel {
		return 0, fmt.Errorf("lock level %d exceeds maximum %d", n, lockorder.MaxLevel)
	}
	return lockorder.Level(n), nil
}

func parseLockLevels(s string) ([]lockorder.Level, error) {
	var levels []lockorder.Level
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		lvl, err := parseLockLevel(part)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}
