package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping defines the Bleve mapping for track documents.
// Documents are indexed as maps with lowercase field names (see ToMap), so
// the mapping addresses those names directly.
func buildIndexMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Store = false

	stored := bleve.NewTextFieldMapping()
	stored.Store = true

	keyword := bleve.NewKeywordFieldMapping()
	keyword.Store = true

	boolField := bleve.NewBooleanFieldMapping()
	boolField.Store = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("id", keyword)
	doc.AddFieldMappingsAt("display_name", stored)
	doc.AddFieldMappingsAt("track_name", text)
	doc.AddFieldMappingsAt("album_title", text)
	doc.AddFieldMappingsAt("lyrics", text)
	doc.AddFieldMappingsAt("theme", text)
	doc.AddFieldMappingsAt("sentiment", text)
	doc.AddFieldMappingsAt("notes", text)
	doc.AddFieldMappingsAt("has_analysis", boolField)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	return im
}
