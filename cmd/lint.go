package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/elmreview/internal/project"
	"github.com/gnoswap-labs/elmreview/internal/rules"
	"github.com/gnoswap-labs/elmreview/lint"
)

var (
	ignoreRules    string
	lintJSONOutput bool
	outPath        string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint elm-like source files",
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

		runLint(ctx, logger, engine, args, lintJSONOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rule names to ignore")
	lintCmd.Flags().BoolVar(&lintJSONOutput, "json", false, "Output diagnostics as JSON")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using --json)")
}

// buildEngine loads the configuration at cfgFile (or a default that
// enables every catalog rule at error severity) and removes any rule
// named in the comma-separated ignore list before wiring the engine.
func buildEngine(ignore string) (*lint.Engine, error) {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if ignore != "" {
		for _, name := range strings.Split(ignore, ",") {
			delete(cfg.Rules, strings.TrimSpace(name))
		}
	}
	return lint.NewEngine(rules.All(), cfg)
}

func loadConfig(path string) (lint.Config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	return lint.LoadConfig(path)
}

func defaultConfig() lint.Config {
	names := make([]string, 0, len(rules.All()))
	for _, r := range rules.All() {
		names = append(names, r.Name())
	}
	return lint.DefaultConfig("elmreview", names)
}

func runLint(ctx context.Context, logger *zap.Logger, engine *lint.Engine, paths []string, isJSON bool, jsonOutput string) {
	var results []lint.FileResult
	for _, path := range paths {
		res, err := lint.LintPath(ctx, logger, engine, project.New(nil), path)
		if err != nil {
			logger.Error("error processing path", zap.String("path", path), zap.Error(err))
			os.Exit(1)
		}
		results = append(results, res...)
	}

	printResults(logger, results, isJSON, jsonOutput)

	for _, res := range results {
		if len(res.Diagnostics) > 0 {
			os.Exit(1)
		}
	}
}

func printResults(logger *zap.Logger, results []lint.FileResult, isJSON bool, jsonOutput string) {
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	if !isJSON {
		for _, res := range results {
			if res.Err != nil {
				logger.Error("error reading file", zap.String("file", res.Path), zap.Error(res.Err))
				continue
			}
			if len(res.Diagnostics) == 0 {
				continue
			}
			content, err := os.ReadFile(res.Path)
			if err != nil {
				logger.Error("error reading source file", zap.String("file", res.Path), zap.Error(err))
				continue
			}
			fmt.Print(formatFileResult(res, strings.Split(string(content), "\n")))
		}
		return
	}

	byFile := make(map[string][]lint.LintDiagnostic, len(results))
	for _, res := range results {
		byFile[res.Path] = res.Diagnostics
	}
	data, err := json.Marshal(byFile)
	if err != nil {
		logger.Error("error marshalling diagnostics to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(jsonOutput, data, 0o644); err != nil {
		logger.Error("error writing JSON output file", zap.Error(err))
	}
}
