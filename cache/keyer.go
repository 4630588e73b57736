package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrUnkeyableType is returned for key types whose JSON encoding would not
// tell distinct keys apart.
var ErrUnkeyableType = errors.New("cache: key type cannot be encoded losslessly")

// Keyer names store keys for singleflight.
//
// Contract:
// - Determinism: equal keys must produce the same name.
// - Injectivity: distinct keys must produce distinct names.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer[K comparable] interface {
	// Key returns the name of key within namespace.
	Key(namespace string, key K) (string, error)
}

// JSONKeyer names keys by the SHA-256 of their JSON encoding. It serves
// strings and structs of exported scalar fields, such as path queries.
type JSONKeyer[K comparable] struct {
	err error
}

// NewJSONKeyer creates a JSONKeyer for K. If K has fields that JSON would
// drop (unexported, tagged "-") or encodes through pointers, every Key call
// fails with ErrUnkeyableType.
func NewJSONKeyer[K comparable]() *JSONKeyer[K] {
	return &JSONKeyer[K]{err: checkKeyType(reflect.TypeFor[K](), nil)}
}

// Key generates a deterministic key.
// Format: <namespace>:<hash>
// where hash is the hex SHA-256 of the JSON encoding of key.
func (k *JSONKeyer[K]) Key(namespace string, key K) (string, error) {
	if k.err != nil {
		return "", k.err
	}
	b, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("cache: encode key: %w", err)
	}
	hash := sha256.Sum256(b)
	return namespace + ":" + hex.EncodeToString(hash[:]), nil
}

// checkKeyType walks t and rejects anything whose encoding loses
// information. path names the offending field in the error.
func checkKeyType(t reflect.Type, path []string) error {
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			name := append(path, f.Name)
			if !f.IsExported() {
				return fmt.Errorf("%w: %s has unexported field %s", ErrUnkeyableType, t, strings.Join(name, "."))
			}
			if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag == "-" {
				return fmt.Errorf("%w: %s skips field %s", ErrUnkeyableType, t, strings.Join(name, "."))
			}
			if err := checkKeyType(f.Type, name); err != nil {
				return err
			}
		}
	case reflect.Array:
		return checkKeyType(t.Elem(), path)
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Errorf("%w: %s is a %s", ErrUnkeyableType, t, t.Kind())
	}
	return nil
}

// Ensure JSONKeyer implements Keyer
var _ Keyer[string] = (*JSONKeyer[string])(nil)
