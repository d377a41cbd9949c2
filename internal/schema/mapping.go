package schema

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Field names as stored in the bleve document mapping.
const (
	FieldPath    = "path"
	FieldNameTok = "name_tok"
	FieldNameRaw = "name_raw"
	FieldExt     = "ext"
	FieldContent = "content"
	FieldMTime   = "mtime"
	FieldSize    = "size"
	FieldInode   = "inode"
	FieldDev     = "dev"

	// DocType is the single bleve document mapping name used for every
	// document; quickfind indexes one kind of thing.
	DocType = "document"
)

// analyzerNameRaw lower-cases the whole field as one token, giving
// name_raw:term* a true prefix match without word splitting.
const analyzerNameRaw = "quickfind_name_raw"

// analyzerTokenized backs name_tok and content. The unicode tokenizer already
// treats U+2026 (the head/tail join character) as a word boundary because
// it is Unicode punctuation, so phrase queries cannot straddle the
// separator without any extra configuration here.
const analyzerTokenized = "quickfind_tokenized"

// BuildIndexMapping constructs the bleve mapping used by internal/indexstore.
func BuildIndexMapping() (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	im.TypeField = "_type"
	im.DefaultType = DocType
	im.DefaultAnalyzer = analyzerTokenized

	if err := im.AddCustomAnalyzer(analyzerNameRaw, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": single.Name,
		"token_filters": []string{
			lowercase.Name,
		},
	}); err != nil {
		return nil, err
	}

	if err := im.AddCustomAnalyzer(analyzerTokenized, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": unicode.Name,
		"token_filters": []string{
			lowercase.Name,
		},
	}); err != nil {
		return nil, err
	}

	doc := bleve.NewDocumentMapping()

	pathField := bleve.NewKeywordFieldMapping()
	pathField.Index = false
	pathField.Store = true
	doc.AddFieldMappingsAt(FieldPath, pathField)

	nameRaw := bleve.NewTextFieldMapping()
	nameRaw.Analyzer = analyzerNameRaw
	nameRaw.Store = true
	doc.AddFieldMappingsAt(FieldNameRaw, nameRaw)

	nameTok := bleve.NewTextFieldMapping()
	nameTok.Analyzer = analyzerTokenized
	nameTok.Store = false
	doc.AddFieldMappingsAt(FieldNameTok, nameTok)

	extField := bleve.NewKeywordFieldMapping()
	extField.Store = true
	doc.AddFieldMappingsAt(FieldExt, extField)

	contentField := bleve.NewTextFieldMapping()
	contentField.Analyzer = analyzerTokenized
	contentField.Store = false
	contentField.IncludeInAll = false
	doc.AddFieldMappingsAt(FieldContent, contentField)

	mtimeField := bleve.NewNumericFieldMapping()
	mtimeField.Store = true
	doc.AddFieldMappingsAt(FieldMTime, mtimeField)

	sizeField := bleve.NewNumericFieldMapping()
	sizeField.Store = true
	doc.AddFieldMappingsAt(FieldSize, sizeField)

	inodeField := bleve.NewNumericFieldMapping()
	inodeField.Index = false
	inodeField.Store = true
	doc.AddFieldMappingsAt(FieldInode, inodeField)

	devField := bleve.NewNumericFieldMapping()
	devField.Index = false
	devField.Store = true
	doc.AddFieldMappingsAt(FieldDev, devField)

	im.AddDocumentMapping(DocType, doc)

	return im, nil
}
