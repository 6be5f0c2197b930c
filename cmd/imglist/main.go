package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bagtoad/imglist/internal/catalog"
	"github.com/bagtoad/imglist/internal/links"
	"github.com/bagtoad/imglist/internal/logging"
	"github.com/bagtoad/imglist/internal/pathinfo"
	"github.com/bagtoad/imglist/internal/remote"
	"github.com/bagtoad/imglist/internal/report"
	"github.com/bagtoad/imglist/internal/scanner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Process exit codes.
const (
	exitOK         = 0
	exitNoFolders  = 1
	exitInput      = 2
	exitUnexpected = 3
)

// exitError carries the process exit code for a failed run.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an Execute error to a process exit code. Errors that did not
// come from run are cobra usage errors.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitInput
}

type resolveFunc func(ctx context.Context, host, dir string) (*remote.Info, error)

func resolveGit(ctx context.Context, host, dir string) (*remote.Info, error) {
	return remote.NewResolver(host).Resolve(ctx, dir)
}

type options struct {
	convention pathinfo.Convention
	urlStyle   links.Shape
	prefix     string
	output     string
	repoDir    string
	host       string
	rawHost    string
	dotPrefix  bool
	verbose    bool
}

// env holds what run reads from its surroundings.
type env struct {
	stdout  io.Writer
	stderr  io.Writer
	workDir string
	resolve resolveFunc
}

func main() {
	rootCmd := newRootCmd(&env{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		workDir: ".",
		resolve: resolveGit,
	})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func newRootCmd(e *env) *cobra.Command {
	opts := &options{
		convention: pathinfo.Named,
		urlStyle:   links.Raw,
	}

	rootCmd := &cobra.Command{
		Use:   "imglist [folder]",
		Short: "List image files with project metadata and repository URLs as CSV",
		Long: `imglist walks a folder tree, derives project, period and sub-unit
names from each image's path and writes them to a CSV report together
with a public URL built from the enclosing git checkout's remote.

Without a folder argument every top-level directory in the current
directory whose name starts with --prefix is scanned.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), e, opts, args)
		},
	}
	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)

	rootCmd.Flags().Var(&opts.convention, "convention", "Path convention: named (strip \"N. \" prefix), marker (from \"D.I\"), fixed (three folder levels)")
	rootCmd.Flags().Var(&opts.urlStyle, "url-style", "URL shape: raw (file content) or view (blob page)")
	rootCmd.Flags().StringVar(&opts.prefix, "prefix", "Oplah", "Folder name prefix scanned when no folder is given")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "images.csv", "CSV file to write")
	rootCmd.Flags().StringVar(&opts.repoDir, "repo", ".", "Directory of the git checkout used to build URLs")
	rootCmd.Flags().StringVar(&opts.host, "host", links.DefaultHost, "Hosting domain expected in the git remote")
	rootCmd.Flags().StringVar(&opts.rawHost, "raw-host", links.DefaultRawHost, "Domain serving raw file content")
	rootCmd.Flags().BoolVar(&opts.dotPrefix, "dot-prefix", false, "Prefix listed paths with ./")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug details")

	return rootCmd
}

func run(ctx context.Context, e *env, opts *options, args []string) error {
	out := e.stdout
	log := logging.New(e.stderr, opts.verbose)
	defer func() { _ = log.Sync() }()

	var files []string
	if len(args) == 0 {
		folders, err := scanner.Discover(e.workDir, opts.prefix)
		if err != nil {
			return &exitError{exitUnexpected, err}
		}
		if len(folders) == 0 {
			return &exitError{exitNoFolders, fmt.Errorf("no %s folders found in current directory", opts.prefix)}
		}

		fmt.Fprintf(out, "Found %d folders to scan:\n", len(folders))
		for _, f := range folders {
			fmt.Fprintf(out, "- %s\n", f)
		}

		for _, folder := range folders {
			root := filepath.Join(e.workDir, folder)
			if info, err := os.Stat(root); err != nil || !info.IsDir() {
				log.Warn("folder not found", zap.String("folder", folder))
				continue
			}
			paths, err := scanRoot(log, root)
			if err != nil {
				return &exitError{exitUnexpected, err}
			}
			files = append(files, prefixPaths(folder, paths, opts.dotPrefix)...)
		}
	} else {
		root := resolvePath(e.workDir, args[0])
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return &exitError{exitInput, fmt.Errorf("folder not found: %s", args[0])}
		}

		fmt.Fprintf(out, "Scanning %s...\n", args[0])
		paths, err := scanRoot(log, root)
		if err != nil {
			return &exitError{exitUnexpected, err}
		}
		files = prefixPaths(displayRoot(args[0], root), paths, opts.dotPrefix)
	}

	info, err := e.resolve(ctx, opts.host, resolvePath(e.workDir, opts.repoDir))
	if err != nil {
		log.Warn("URLs will not be generated", zap.Error(err))
		info = nil
	} else {
		fmt.Fprintf(out, "Found repository: %s\n", info)
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No image files found.")
		return nil
	}

	var progressFn func(current, total int)
	if opts.verbose {
		progressFn = func(current, total int) {
			fmt.Fprintf(out, "\rProcessing image %d/%d...", current, total)
		}
	}
	rows := catalog.Build(files, catalog.Options{
		Convention: opts.convention,
		Remote:     info,
		Links:      links.Builder{Host: opts.host, RawHost: opts.rawHost, Shape: opts.urlStyle},
	}, progressFn)
	if progressFn != nil {
		fmt.Fprintln(out) // newline after progress
	}

	if err := report.WriteCSV(resolvePath(e.workDir, opts.output), catalog.Header, rows); err != nil {
		return &exitError{exitUnexpected, err}
	}
	report.Print(out, rows, opts.output)

	return nil
}

func scanRoot(log *zap.Logger, root string) ([]string, error) {
	result, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}
	log.Debug("scanned folder",
		zap.String("root", root),
		zap.Int("images", len(result.ImagePaths)),
		zap.Int("skipped", result.SkippedCount),
	)
	return result.ImagePaths, nil
}

// resolvePath interprets p relative to dir unless it is absolute.
func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// displayRoot returns the slash-separated prefix listed in front of paths
// found under the folder argument arg, located at root. Absolute paths and
// paths leaving the current directory are reduced to the folder's name.
func displayRoot(arg, root string) string {
	cleaned := filepath.Clean(arg)
	p := filepath.ToSlash(cleaned)
	switch {
	case p == ".":
		return ""
	case filepath.IsAbs(cleaned), p == "..", strings.HasPrefix(p, "../"):
		if abs, err := filepath.Abs(root); err == nil {
			return filepath.Base(abs)
		}
		return filepath.Base(cleaned)
	}
	return p
}

func prefixPaths(prefix string, paths []string, dot bool) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if prefix != "" {
			p = prefix + "/" + p
		}
		if dot {
			p = pathinfo.DotMarker + p
		}
		out[i] = p
	}
	return out
}
