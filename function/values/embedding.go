package values

import "reflect"

// EmbeddingMarker is implemented by Embedding and by every type that embeds
// it. A function whose return type implements it is EMBEDDABLE.
type EmbeddingMarker interface {
	embeddingMarker()
}

// Embedding is a vector produced by an embedding backend. Embed it in a
// struct to declare a domain-specific embedding type.
type Embedding[T ~float32 | ~float64] struct {
	Vector []T `json:"vector"`
}

func (Embedding[T]) embeddingMarker() {}

var embeddingMarkerType = reflect.TypeFor[EmbeddingMarker]()

// IsEmbeddingType reports whether t is, or derives from, Embedding.
func IsEmbeddingType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Implements(embeddingMarkerType) {
		return true
	}
	return t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(embeddingMarkerType)
}
