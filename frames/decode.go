package frames

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrUnknownFormat is returned by LoadFile for an unrecognized file
// extension.
var ErrUnknownFormat = errors.New("unknown data file format")

// LoadJSON decodes a single JSON object. Empty input yields an
// empty frame.
func LoadJSON(in io.Reader) (map[string]any, error) {
	const errCtx = "loading json frame"

	frame := make(map[string]any)

	err := json.NewDecoder(in).Decode(&frame)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return frame, nil
}

// LoadYAML decodes the first YAML document, which must be a
// mapping. Empty input yields an empty frame.
func LoadYAML(in io.Reader) (map[string]any, error) {
	const errCtx = "loading yaml frame"

	var frame map[string]any

	err := yaml.NewDecoder(in).Decode(&frame)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if frame == nil {
		frame = make(map[string]any)
	}

	return frame, nil
}

// LoadDotenv parses KEY=VALUE lines in .env syntax.
func LoadDotenv(in io.Reader) (map[string]any, error) {
	const errCtx = "loading dotenv frame"

	vars, err := godotenv.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	frame := make(map[string]any, len(vars))
	for key, val := range vars {
		frame[key] = val
	}

	return frame, nil
}

// LoadFile reads a data file, choosing the decoder from its
// extension: .json, .yaml, .yml or .env.
func LoadFile(path string) (result map[string]any, retErr error) {
	const errCtx = "loading data file"

	var load func(io.Reader) (map[string]any, error)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		load = LoadJSON
	case ".yaml", ".yml":
		load = LoadYAML
	case ".env":
		load = LoadDotenv
	default:
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, path, ErrUnknownFormat,
		)
	}

	fi, err := os.Open(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	frame, err := load(fi)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return frame, nil
}
