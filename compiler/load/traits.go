package load

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// TraitDef is a serialized trait application.
type TraitDef struct {
	Name  string
	Value any
}

// TraitDefs is an object of trait applications. It keeps document order in
// every encoding, so traits decode in the order they were applied.
type TraitDefs []TraitDef

// MarshalJSON implements json.Marshaler.
func (ts TraitDefs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range ts {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(t.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *TraitDefs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*ts = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("traits: expected an object, got %v", tok)
	}
	var out TraitDefs
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("traits: expected a trait name, got %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("traits: %s: %w", name, err)
		}
		out = append(out, TraitDef{Name: name, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*ts = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (ts TraitDefs) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, t := range ts {
		var v yaml.Node
		if err := v.Encode(t.Value); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Name}, &v)
	}
	return n, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (ts *TraitDefs) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Tag == "!!null" {
		*ts = nil
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("traits: line %d: expected a mapping", n.Line)
	}
	out := make(TraitDefs, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("traits: line %d: expected a trait name", key.Line)
		}
		var v any
		if err := val.Decode(&v); err != nil {
			return fmt.Errorf("traits: %s: %w", key.Value, err)
		}
		out = append(out, TraitDef{Name: key.Value, Value: v})
	}
	*ts = out
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (ts TraitDefs) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(ts)); err != nil {
		return err
	}
	for _, t := range ts {
		if err := enc.EncodeString(t.Name); err != nil {
			return err
		}
		if err := enc.Encode(t.Value); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (ts *TraitDefs) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n < 0 {
		*ts = nil
		return nil
	}
	out := make(TraitDefs, 0, n)
	for range n {
		name, err := dec.DecodeString()
		if err != nil {
			return err
		}
		v, err := dec.DecodeInterface()
		if err != nil {
			return fmt.Errorf("traits: %s: %w", name, err)
		}
		out = append(out, TraitDef{Name: name, Value: v})
	}
	*ts = out
	return nil
}

var (
	_ json.Marshaler        = TraitDefs(nil)
	_ json.Unmarshaler      = (*TraitDefs)(nil)
	_ yaml.Marshaler        = TraitDefs(nil)
	_ yaml.Unmarshaler      = (*TraitDefs)(nil)
	_ msgpack.CustomEncoder = TraitDefs(nil)
	_ msgpack.CustomDecoder = (*TraitDefs)(nil)
)
