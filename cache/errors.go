package cache

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// CategorySerialization tags errors raised while deriving a structural key.
var CategorySerialization = goerrors.CategoryBadInput.Extend("serialization")

// TextCodeSerialization is the text code carried by serialization errors.
const TextCodeSerialization = "SERIALIZATION_ERROR"

// NewSerializationError reports that the argument at position could not be
// converted to its canonical text form.
func NewSerializationError(position int, source error) *goerrors.Error {
	return goerrors.Wrap(source, CategorySerialization, fmt.Sprintf("argument %d cannot be serialized", position)).
		WithTextCode(TextCodeSerialization).
		WithMetadata(map[string]any{"position": position})
}

// IsSerializationError reports whether err, or an error it wraps, is a
// serialization error.
func IsSerializationError(err error) bool {
	return goerrors.HasCategory(err, CategorySerialization)
}
