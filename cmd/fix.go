package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/elmreview/internal/fix"
	"github.com/gnoswap-labs/elmreview/internal/parse"
	"github.com/gnoswap-labs/elmreview/internal/project"
	"github.com/gnoswap-labs/elmreview/lint"
)

var dryRun bool

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Apply machine-applicable fixes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := buildEngine(ignoreRules)
		if err != nil {
			logger.Fatal("failed to initialize lint engine", zap.Error(err))
		}

		for _, path := range args {
			if err := runFix(ctx, logger, engine, path, dryRun); err != nil {
				logger.Error("error fixing path", zap.String("path", path), zap.Error(err))
			}
		}
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show fixes without applying them")
}

func runFix(ctx context.Context, logger *zap.Logger, engine *lint.Engine, path string, dryRun bool) error {
	results, err := lint.LintPath(ctx, logger, engine, project.New(nil), path)
	if err != nil {
		return err
	}

	for _, res := range results {
		if res.Err != nil {
			logger.Error("error reading file", zap.String("file", res.Path), zap.Error(res.Err))
			continue
		}
		if err := fixFile(res, dryRun); err != nil {
			logger.Error("error fixing file", zap.String("file", res.Path), zap.Error(err))
		}
	}
	return nil
}

// fixFile gathers every diagnostic's fixes for one file and applies them as
// a single batch, the way the fix engine expects (spec.md §4.5): a batch
// with colliding ranges, no net change, or a result that fails to re-parse
// is rejected wholesale rather than partially applied.
func fixFile(res lint.FileResult, dryRun bool) error {
	var fixes []fix.Fix
	for _, d := range res.Diagnostics {
		fixes = append(fixes, d.Diagnostic.Fixes...)
	}
	if len(fixes) == 0 {
		return nil
	}

	content, err := os.ReadFile(res.Path)
	if err != nil {
		return err
	}

	fixed, err := fix.Apply(fixes, string(content), parse.CheckSyntax)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("--- %s would change ---\n%s\n", res.Path, fixed)
		return nil
	}

	return os.WriteFile(res.Path, []byte(fixed), 0o644)
}
