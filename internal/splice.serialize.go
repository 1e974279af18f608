package internal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Serializer constants
const (
	JSONIndent     = "  "
	JSONPrefix     = ""
	YAMLIndent     = 2
	SerializerJSON = "json"
	SerializerYAML = "yaml"
)

// Serializer error messages
const (
	ErrMsgSerializeFailed = "serialization failed"
	ErrMsgPathNotFound    = "path not found in serialized value"
	ErrMsgInvalidJSON     = "serializer produced invalid JSON"
)

// JSONSerializer encodes values as indented JSON.
type JSONSerializer struct{}

// Serialize implements the serializer contract.
func (JSONSerializer) Serialize(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(JSONPrefix, JSONIndent)
	if err := enc.Encode(v); err != nil {
		return nil, NewSerializeError(ErrMsgSerializeFailed, SerializerJSON, err)
	}
	// Encoder appends a newline; callers embed the text inline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// YAMLSerializer encodes values as YAML.
type YAMLSerializer struct{}

// Serialize implements the serializer contract.
func (YAMLSerializer) Serialize(v any) (out []byte, err error) {
	// yaml.v3 panics on some unsupported values (e.g. funcs); surface those as errors.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = NewSerializeError(ErrMsgSerializeFailed, SerializerYAML, fmt.Errorf("%v", r))
		}
	}()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(YAMLIndent)
	if err := enc.Encode(v); err != nil {
		return nil, NewSerializeError(ErrMsgSerializeFailed, SerializerYAML, err)
	}
	if err := enc.Close(); err != nil {
		return nil, NewSerializeError(ErrMsgSerializeFailed, SerializerYAML, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// SelectPath encodes v as JSON and returns the decoded value found at the
// gjson path.
func SelectPath(v any, path string) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, NewSerializeError(ErrMsgSerializeFailed, SerializerJSON, err)
	}
	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return nil, NewSerializeError(ErrMsgPathNotFound, path, nil)
	}
	var sub any
	if err := json.Unmarshal([]byte(res.Raw), &sub); err != nil {
		return nil, NewSerializeError(ErrMsgInvalidJSON, path, err)
	}
	return sub, nil
}

// SerializeError represents a serializer failure.
type SerializeError struct {
	Message string
	Target  string
	Cause   error
}

// NewSerializeError creates a new serialize error
func NewSerializeError(message, target string, cause error) *SerializeError {
	return &SerializeError{
		Message: message,
		Target:  target,
		Cause:   cause,
	}
}

// Error implements the error interface
func (e *SerializeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf(ErrFmtFormatError, e.Message, e.Target, e.Cause.Error())
	}
	return fmt.Sprintf(ErrFmtNameMessage, e.Message, e.Target)
}

// Unwrap returns the underlying cause.
func (e *SerializeError) Unwrap() error {
	return e.Cause
}
