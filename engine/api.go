package engine

import (
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology"
	"github.com/viant/typology/encoding/json"
	"github.com/viant/typology/node"
)

// ToJSON serializes value declared as t into JSON text
func (e *Engine) ToJSON(value interface{}, t *typology.Type) (string, error) {
	data, err := e.Encode(e.json, value, t)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON deserializes JSON text as t
func (e *Engine) FromJSON(text string, t *typology.Type) (interface{}, error) {
	return e.Decode(e.json, []byte(text), t)
}

// ToJSONContext serializes value into JSON text, emitting serialize signals
func (e *Engine) ToJSONContext(ctx context.Context, value interface{}, t *typology.Type) (string, error) {
	typeName := t.String()
	emitSerializeStart(ctx, json.ContentType, typeName)
	started := time.Now()
	ret, err := e.ToJSON(value, t)
	emitSerializeComplete(ctx, json.ContentType, typeName, len(ret), time.Since(started), err)
	return ret, err
}

// FromJSONContext deserializes JSON text as t, emitting deserialize signals
func (e *Engine) FromJSONContext(ctx context.Context, text string, t *typology.Type) (interface{}, error) {
	typeName := t.String()
	emitDeserializeStart(ctx, json.ContentType, typeName, len(text))
	started := time.Now()
	ret, err := e.FromJSON(text, t)
	emitDeserializeComplete(ctx, json.ContentType, typeName, time.Since(started), err)
	return ret, err
}

// WriteJSON serializes value declared as t into writer
func (e *Engine) WriteJSON(writer io.Writer, value interface{}, t *typology.Type) error {
	data, err := e.Encode(e.json, value, t)
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return errors.Wrap(err, "write json")
}

// ReadJSON deserializes JSON text read from reader as t
func (e *Engine) ReadJSON(reader io.Reader, t *typology.Type) (interface{}, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "read json")
	}
	return e.Decode(e.json, data, t)
}

// Encode serializes value declared as t with codec
func (e *Engine) Encode(codec node.Codec, value interface{}, t *typology.Type) ([]byte, error) {
	root, err := e.Serialize(value, t)
	if err != nil {
		return nil, err
	}
	data, err := codec.Marshal(root)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %v as %v", t, codec.ContentType())
	}
	return data, nil
}

// Decode deserializes data encoded with codec as t
func (e *Engine) Decode(codec node.Codec, data []byte, t *typology.Type) (interface{}, error) {
	root, err := codec.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %v from %v", t, codec.ContentType())
	}
	return e.Deserialize(root, t)
}
