package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/gnoswap-labs/elmreview/internal/project"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// FileResult pairs one file's diagnostics with the path they came from,
// the way gnoverse-tlin's ProcessPath attaches a filename to every Issue
// it collects while walking a directory.
type FileResult struct {
	Path        string
	Diagnostics []LintDiagnostic
	Err         error
}

// LintFile reads and lints a single .elm file.
func LintFile(e *Engine, p *project.Project, path string) (FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path}, fmt.Errorf("lint: reading %s: %w", path, err)
	}
	diags, err := e.LintSource(p, string(content))
	if err != nil {
		return FileResult{Path: path}, err
	}
	return FileResult{Path: path, Diagnostics: diags}, nil
}

// LintPath walks path (a file or a directory) and lints every .elm file it
// finds, concurrently, the way gnoverse-tlin's ProcessPath does for Go
// source — worker pool bounded by NumCPU, a progressbar.v3 bar tracking
// completed files, cancellable through ctx.
func LintPath(ctx context.Context, logger *zap.Logger, e *Engine, p *project.Project, path string) ([]FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("lint: accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasElmExtension(path) {
			return nil, nil
		}
		res, err := LintFile(e, p, path)
		if err != nil {
			return nil, err
		}
		return []FileResult{res}, nil
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && hasElmExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lint: walking %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	resultChan := make(chan FileResult, len(files))

	var wg sync.WaitGroup
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := LintFile(e, p, fp)
			if err != nil {
				if logger != nil {
					logger.Error("lint: failed to process file", zap.String("file", fp), zap.Error(err))
				}
				res = FileResult{Path: fp, Err: err}
			}
			_ = bar.Add(1)
			resultChan <- res
		}(filePath)
	}

	wg.Wait()
	close(resultChan)

	var results []FileResult
	for res := range resultChan {
		results = append(results, res)
	}
	return results, nil
}

var elmExtensions = map[string]bool{".elm": true}

func hasElmExtension(path string) bool {
	return elmExtensions[filepath.Ext(path)]
}
