// Package wordlist reads line-delimited keys to feed into a table.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// ErrRead marks failures to open or read a key source
var ErrRead = errors.New("failed to read word list")

const maxLineSize = 1024 * 1024

// Load returns every line of the file at path, in order
func Load(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Read returns every line of r, in order. A trailing carriage return is
// stripped from each line and a final newline does not add an empty entry.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var words []string
	for scanner.Scan() {
		words = append(words, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return words, nil
}
