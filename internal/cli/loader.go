package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes bounds a single input line. Puzzle inputs are ~25KB.
const maxLineBytes = 16 << 20

// ReadInputLine returns the first non-empty line of the file at path, or of
// stdin when path is empty. The trailing newline is stripped.
// An input with no non-empty line yields "".
func ReadInputLine(path string, stdin io.Reader) (string, error) {
	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", NewExitError(ExitCommandError, fmt.Sprintf("input file not found: %s", path))
			}
			return "", WrapExitError(ExitCommandError, "failed to open input", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return "", nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return "", nil
}
