// Package registryfile decodes the YAML/JSON registry files (checks,
// publishers) by file extension.
package registryfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type decoder struct {
	ext string
	fn  func([]byte, any) error
}

var decoders = []decoder{
	{ext: ".yaml", fn: yaml.Unmarshal},
	{ext: ".yml", fn: yaml.Unmarshal},
	{ext: ".json", fn: decodeJSON},
}

// decodeJSON keeps numbers in free-form fields as json.Number so 64-bit ids
// survive re-encoding.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// Read loads path and decodes it by its extension. kind names the registry
// in errors, e.g. "checks". Open errors are wrapped so fs.ErrNotExist can be
// detected.
func Read[T any](path, kind string) (T, error) {
	var zero T
	path = strings.TrimSpace(path)
	if path == "" {
		return zero, fmt.Errorf("%s file path is empty", kind)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("open %s file: %w", kind, err)
	}
	return Decode[T](raw, filepath.Ext(path), kind)
}

// Decode parses data into a fresh T. ext selects the decoder; an unknown or
// empty ext tries each decoder in turn.
func Decode[T any](data []byte, ext, kind string) (T, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	var errs []error
	for _, d := range decoders {
		if ext != "" && known(ext) && ext != d.ext {
			continue
		}
		var out T
		err := d.fn(data, &out)
		if err == nil {
			return out, nil
		}
		errs = append(errs, fmt.Errorf("decode %s as %s: %w", kind, strings.TrimPrefix(d.ext, "."), err))
	}

	var zero T
	return zero, fmt.Errorf("%s file format not recognized (expected YAML or JSON): %w", kind, errors.Join(errs...))
}

func known(ext string) bool {
	for _, d := range decoders {
		if d.ext == ext {
			return true
		}
	}
	return false
}
