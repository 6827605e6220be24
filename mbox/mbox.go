// Package mbox owns container-level concerns: deciding whether a path
// looks like an MBOX archive, expanding directory arguments into
// candidate files and iterating the raw messages of one archive.
package mbox

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	mboxlib "github.com/emersion/go-mbox"
)

var mboxExtensions = map[string]bool{
	".mbox":  true,
	".mbx":   true,
	".mbxrd": true,
	".mboxo": true,
}

// Detect reports whether the path plausibly references an MBOX
// container: a regular file whose first line begins with the literal
// "From " marker, or whose extension is a known MBOX variant.
func Detect(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	prefix := make([]byte, 5)
	if n, _ := io.ReadFull(file, prefix); n == 5 && string(prefix) == "From " {
		return true
	}

	return mboxExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover expands the given paths into candidate files. Directories
// are scanned one level deep, or fully with recursive. Detection is
// left to the caller so non-MBOX files can be reported as skipped
// rather than silently dropped.
func Discover(paths []string, recursive bool) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if !recursive && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			found = append(found, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// Message is one raw archive entry in arrival order. Index is
// 1-based. Err is set when the entry's bytes could not be read; Raw
// is nil in that case.
type Message struct {
	Index int
	Raw   []byte
	Err   error
}

// ForEach opens the archive read-only and calls fn for every message
// in arrival order. The file handle is released on all exit paths. A
// container-level failure ends iteration with an error; fn may also
// stop iteration by returning one.
func ForEach(path string, fn func(m Message) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open mbox: %w", err)
	}
	defer file.Close()

	reader := mboxlib.NewReader(file)

	for idx := 1; ; idx++ {
		msgReader, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("message %d: %w", idx, err)
		}

		raw, err := io.ReadAll(msgReader)
		if err != nil {
			if cbErr := fn(Message{Index: idx, Err: fmt.Errorf("read message %d: %w", idx, err)}); cbErr != nil {
				return cbErr
			}
			continue
		}

		if err := fn(Message{Index: idx, Raw: raw}); err != nil {
			return err
		}
	}
}
