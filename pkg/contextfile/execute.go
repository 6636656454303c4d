// File: pkg/contextfile/execute.go
package contextfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

// Run orchestrates one context file generation: resolves the configuration,
// loads ignore rules, aggregates the tree, and reports the counters. The
// summary is printed to stdout so the run is useful without log scraping.
func Run(args *Arguments, logger *zap.Logger) error {
	startTime := time.Now()

	if args.Directory == "" {
		args.Directory = "."
	}
	if args.Output == "" {
		args.Output = DefaultOutputFile
	}
	excludes := args.ExcludePatterns
	if len(excludes) == 0 {
		excludes = DefaultExcludePatterns()
	}

	root, err := filepath.Abs(args.Directory)
	if err != nil {
		return fmt.Errorf("failed to resolve directory path: %w", err)
	}

	ignores := LoadIgnoreFile(root, logger)
	if n := ignores.Len(); n > 0 {
		logger.Info("Loaded ignore patterns", zap.Int("patterns", n))
	}

	filter, err := NewFilter(excludes, ignores)
	if err != nil {
		return fmt.Errorf("invalid exclude pattern: %w", err)
	}

	var gi gitignore.IgnoreMatcher
	if args.RespectGitignore {
		gi = loadGitignore(root, logger)
	}

	summary, err := Aggregate(args, filter, gi, logger)
	if err != nil {
		return fmt.Errorf("failed to generate context file: %w", err)
	}

	fmt.Printf("Context file created at: %s\n", args.Output)
	fmt.Printf("Files processed: %d\n", summary.Processed)
	fmt.Printf("Files ignored by %s: %d\n", IgnoreFileName, summary.Ignored)
	fmt.Printf("Files skipped for other reasons: %d\n", summary.Skipped)
	fmt.Printf("Total size: %d bytes\n", summary.TotalBytes)

	if args.CountTokens || args.CopyToClipboard {
		if err := postProcess(args, logger); err != nil {
			logger.Warn("Post-processing failed", zap.Error(err))
		}
	}

	logger.Info("Context file generation completed",
		zap.String("output", args.Output),
		zap.Int("processed", summary.Processed),
		zap.Int("ignored", summary.Ignored),
		zap.Int("skipped", summary.Skipped),
		zap.Int64("totalBytes", summary.TotalBytes),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

// postProcess reads the finished artifact back for the optional token
// estimate and clipboard copy. Failures here never fail the run; the
// artifact is already on disk.
func postProcess(args *Arguments, logger *zap.Logger) error {
	content, err := os.ReadFile(args.Output)
	if err != nil {
		return fmt.Errorf("failed to re-read artifact %s: %w", args.Output, err)
	}

	if args.CountTokens {
		tokens, err := EstimateTokens(string(content))
		if err != nil {
			logger.Warn("Token estimate unavailable", zap.Error(err))
		} else {
			fmt.Printf("Estimated tokens: %d\n", tokens)
			logger.Info("Estimated context window usage", zap.Int("tokens", tokens))
		}
	}

	if args.CopyToClipboard {
		if err := clipboard.WriteAll(string(content)); err != nil {
			return fmt.Errorf("failed to copy artifact to clipboard: %w", err)
		}
		fmt.Println("Context file copied to clipboard.")
	}
	return nil
}
