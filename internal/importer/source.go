package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// ErrMalformed is returned for sources that are not UTF-8 text
var ErrMalformed = errors.New("file is not valid UTF-8 text")

var bom = []byte{0xEF, 0xBB, 0xBF}

// ReadSource reads a whole import file. There is no partial delivery: the
// caller gets either the complete text or an error.
func ReadSource(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return ReadFrom(ctx, f)
}

// ReadFrom is ReadSource for an already open reader such as stdin.
func ReadFrom(ctx context.Context, r io.Reader) (string, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(r)
		done <- result{data: data, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return "", fmt.Errorf("failed to read import file: %w", res.err)
	}

	data := bytes.TrimPrefix(res.data, bom)
	if !utf8.Valid(data) {
		return "", ErrMalformed
	}
	return string(data), nil
}
