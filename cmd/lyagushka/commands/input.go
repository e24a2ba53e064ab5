package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pierrec/lz4/v4"

	"github.com/Sumatoshi-tech/lyagushka/pkg/safeconv"
)

// stdinPath selects standard input instead of a file.
const stdinPath = "-"

// lz4Ext marks inputs stored as LZ4 frames.
const lz4Ext = ".lz4"

var (
	// ErrDirectoryPath indicates a file operation was attempted on a directory.
	ErrDirectoryPath = errors.New("path points to a directory")
	// ErrEmptyPath indicates a path argument was empty.
	ErrEmptyPath = errors.New("path is empty")
	// ErrPathContainsNUL indicates the path contains a NUL byte.
	ErrPathContainsNUL = errors.New("path contains NUL byte")
	// ErrInvalidObservation indicates an input line that is not an integer.
	ErrInvalidObservation = errors.New("invalid observation")
	// ErrInputTooLarge indicates the input exceeds input.max_size.
	ErrInputTooLarge = errors.New("input exceeds input.max_size")
)

// openInput opens path, or stdin for "-", decompressing .lz4 files.
// The returned name is used in error messages.
func openInput(path string, stdin io.Reader) (io.ReadCloser, string, error) {
	if path == stdinPath {
		return io.NopCloser(stdin), "stdin", nil
	}

	resolvedPath, err := resolveUserFilePath(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve path %q: %w", path, err)
	}

	//nolint:gosec // resolvedPath is normalized and existence/type checked in resolveUserFilePath.
	file, err := os.Open(resolvedPath)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", resolvedPath, err)
	}

	if !strings.EqualFold(filepath.Ext(resolvedPath), lz4Ext) {
		return file, resolvedPath, nil
	}

	return struct {
		io.Reader
		io.Closer
	}{Reader: lz4.NewReader(file), Closer: file}, resolvedPath, nil
}

func resolveUserFilePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}

	if strings.ContainsRune(path, '\x00') {
		return "", fmt.Errorf("%w: %q", ErrPathContainsNUL, path)
	}

	cleanPath := filepath.Clean(path)

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", absPath, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDirectoryPath, absPath)
	}

	return absPath, nil
}

// limitInput caps r at maxSize bytes. The returned check reports
// ErrInputTooLarge once more than maxSize bytes were requested.
func limitInput(r io.Reader, maxSize uint64) (io.Reader, func() error) {
	limited := &io.LimitedReader{R: r, N: safeconv.AddInt64(safeconv.Uint64ToInt64(maxSize), 1)}

	return limited, func() error {
		if limited.N <= 0 {
			return fmt.Errorf("%w (%d bytes)", ErrInputTooLarge, maxSize)
		}

		return nil
	}
}

// readObservations parses one integer per line. Blank lines are skipped and
// surrounding whitespace is ignored.
func readObservations(r io.Reader, name string, maxSize uint64) ([]int64, error) {
	limited, checkSize := limitInput(r, maxSize)

	var values []int64

	scanner := bufio.NewScanner(limited)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		value, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			sizeErr := checkSize()
			if sizeErr != nil {
				return nil, sizeErr
			}

			return nil, fmt.Errorf("%w: %s line %d: %q", ErrInvalidObservation, name, lineNo, line)
		}

		values = append(values, value)
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	err = checkSize()
	if err != nil {
		return nil, err
	}

	return values, nil
}

// fileIsTerminal reports whether v is an *os.File attached to a terminal.
func fileIsTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
