package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/shapegen/shape"
)

// Format is a snapshot encoding.
type Format string

// Supported snapshot encodings.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "mp", "mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("load: unknown snapshot format %q", name)
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("load: cannot infer snapshot format of %q", path)
	}
	return ParseFormat(ext)
}

// MarshalModel encodes the snapshot of m in the given format.
func MarshalModel(m *shape.Model, f Format) ([]byte, error) {
	s := NewSnapshot(m)
	switch f {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetSortMapKeys(true)
		if err := enc.Encode(s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("load: unknown snapshot format %q", f)
	}
}

// UnmarshalModel decodes a snapshot in the given format and builds its model.
func UnmarshalModel(buf []byte, f Format) (*shape.Model, error) {
	s := &Snapshot{}
	var err error
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.DisallowUnknownFields()
		err = dec.Decode(s)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		err = dec.Decode(s)
	case FormatMsgpack:
		err = msgpack.Unmarshal(buf, s)
	default:
		return nil, fmt.Errorf("load: unknown snapshot format %q", f)
	}
	if err != nil {
		return nil, &ModelError{Message: fmt.Sprintf("decode %s snapshot", f), Cause: err}
	}
	return s.Model()
}

// LoadFile reads the snapshot at path. The format is inferred from the file
// extension.
func LoadFile(path string) (*shape.Model, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	m, err := UnmarshalModel(buf, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
