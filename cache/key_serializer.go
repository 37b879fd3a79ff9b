package cache

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// KeyJoiner separates serialized arguments inside a cache key. A zero width
// joiner does not show up in the default string form of numbers or booleans
// and is rare enough in ordinary strings to act as an out-of-band separator.
const KeyJoiner = "\u200d"

// DefaultNamespace seeds the name-based hash of structural keys.
const DefaultNamespace = "2a848cdb-6acd-48d5-ac74-970972c1038e"

var defaultNamespaceUUID = uuid.MustParse(DefaultNamespace)

// primitiveKeySerializer joins the default string form of every argument.
// It never fails and never inspects argument types, so values whose string
// forms are ambiguous (1 vs "1") share a key.
type primitiveKeySerializer struct{}

// NewPrimitiveKeySerializer returns a KeySerializer that joins arguments
// with KeyJoiner without hashing.
func NewPrimitiveKeySerializer() KeySerializer {
	return primitiveKeySerializer{}
}

func (primitiveKeySerializer) SerializeKey(args ...any) (string, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		if arg == nil {
			continue
		}
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, KeyJoiner), nil
}

// structuralKeySerializer serializes every argument to JSON, joins the
// results and hashes the signature with UUIDv5 under a namespace.
type structuralKeySerializer struct {
	namespace uuid.UUID
}

// NewStructuralKeySerializer returns a KeySerializer producing UUIDv5 keys.
// An empty namespace selects DefaultNamespace. A namespace that does not
// parse as a UUID is mapped to one by hashing it under DefaultNamespace.
func NewStructuralKeySerializer(namespace string) KeySerializer {
	return &structuralKeySerializer{namespace: ResolveNamespace(namespace)}
}

// NewKeySerializer picks the primitive or the structural serializer.
// namespace is ignored in primitive mode.
func NewKeySerializer(primitive bool, namespace string) KeySerializer {
	if primitive {
		return NewPrimitiveKeySerializer()
	}
	return NewStructuralKeySerializer(namespace)
}

// ResolveNamespace turns a namespace name into the UUID used as hash seed.
func ResolveNamespace(namespace string) uuid.UUID {
	if namespace == "" {
		return defaultNamespaceUUID
	}
	if id, err := uuid.Parse(namespace); err == nil {
		return id
	}
	return uuid.NewSHA1(defaultNamespaceUUID, []byte(namespace))
}

// SerializeKey builds the key for args. encoding/json writes map keys in
// sorted order and struct fields in declaration order, so two argument
// lists that are JSON-equal hash to the same key.
func (s *structuralKeySerializer) SerializeKey(args ...any) (string, error) {
	signature, err := Signature(args...)
	if err != nil {
		return "", err
	}
	return uuid.NewSHA1(s.namespace, []byte(signature)).String(), nil
}

// Signature returns the unhashed structural form of args: the JSON text of
// each argument joined with KeyJoiner.
func Signature(args ...any) (string, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		raw, err := json.Marshal(arg)
		if err != nil {
			return "", NewSerializationError(i, err)
		}
		parts[i] = string(raw)
	}
	return strings.Join(parts, KeyJoiner), nil
}
