// Package parser decodes function description documents.
package parser

import "github.com/NotAdityaPawar/monkeypatch/function/dto"

// DescriptionParser parses raw document bytes into a Document.
type DescriptionParser interface {
	// Parse unmarshals document bytes and checks the format version.
	Parse(data []byte) (*dto.Document, error)
}
