package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/elmreview/internal/project"
	"github.com/gnoswap-labs/elmreview/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-lint .elm files as they change on disk",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: please provide file or directory paths")
			os.Exit(1)
		}

		engine, err := buildEngine(ignoreRules)
		if err != nil {
			logger.Fatal("failed to initialize lint engine", zap.Error(err))
		}

		if err := runWatch(context.Background(), logger, engine, args); err != nil {
			logger.Fatal("watch failed", zap.Error(err))
		}
	},
}

// runWatch is gnoverse-tlin's Engine.watchLoop reworked as a free function
// over an fsnotify.Watcher and a *lint.Engine: watch every directory under
// each given path, and re-lint a .elm file 100ms after each write event on
// it, the same delay the teacher used for ".go"/".gno"/".mod" writes. Every
// write event triggers its own run; a burst of saves is not collapsed into
// one.
func runWatch(ctx context.Context, logger *zap.Logger, engine *lint.Engine, dirs []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("watch: adding %s: %w", dir, err)
		}
	}

	logger.Info("watching for changes", zap.Strings("paths", dirs))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write && strings.HasSuffix(event.Name, ".elm") {
				time.Sleep(100 * time.Millisecond)
				handleWatchEvent(logger, engine, event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", zap.Error(err))
		}
	}
}

func handleWatchEvent(logger *zap.Logger, engine *lint.Engine, path string) {
	res, err := lint.LintFile(engine, project.New(nil), path)
	if err != nil {
		logger.Error("error linting changed file", zap.String("file", path), zap.Error(err))
		return
	}
	if len(res.Diagnostics) == 0 {
		logger.Info("no issues found", zap.String("file", path))
		return
	}
	logger.Info("issues found", zap.String("file", path), zap.Int("count", len(res.Diagnostics)))
	for _, d := range res.Diagnostics {
		logger.Info("diagnostic", zap.String("rule", d.RuleName), zap.String("message", d.Diagnostic.Message))
	}
}
