package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for favorite documents.
//
// Names use English stemming. Color names use the simple analyzer since
// they mix English and Spanish words. Hexes and IDs are exact keywords.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	colorNamesFieldMapping := bleve.NewTextFieldMapping()
	colorNamesFieldMapping.Analyzer = simple.Name
	colorNamesFieldMapping.Store = true
	colorNamesFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("color_names", colorNamesFieldMapping)

	cssNamesFieldMapping := bleve.NewTextFieldMapping()
	cssNamesFieldMapping.Analyzer = keyword.Name
	cssNamesFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("css_names", cssNamesFieldMapping)

	hexesFieldMapping := bleve.NewTextFieldMapping()
	hexesFieldMapping.Analyzer = keyword.Name
	hexesFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("hexes", hexesFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	colorCountFieldMapping := bleve.NewNumericFieldMapping()
	colorCountFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("color_count", colorCountFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
