package schema

import "github.com/nkvale/quickfind/pkg/types"

// qfDoc is the shape handed to bleve.Index(id, doc); field names must match
// BuildIndexMapping's document mapping.
type qfDoc struct {
	Type    string `json:"_type"`
	Path    string `json:"path"`
	NameTok string `json:"name_tok"`
	NameRaw string `json:"name_raw"`
	Ext     string `json:"ext,omitempty"`
	Content string `json:"content,omitempty"`
	MTime   int64  `json:"mtime"`
	Size    uint64 `json:"size"`
	Inode   uint64 `json:"inode"`
	Dev     uint64 `json:"dev"`
}

// ToIndexDoc converts a Document into the shape stored in bleve, keyed by
// path: the same path always maps to the same document ID.
func ToIndexDoc(d *types.Document) (id string, body interface{}) {
	return d.Path, &qfDoc{
		Type:    DocType,
		Path:    d.Path,
		NameTok: d.Name,
		NameRaw: d.Name,
		Ext:     d.Ext,
		Content: d.Content,
		MTime:   d.MTime,
		Size:    d.Size,
		Inode:   d.Inode,
		Dev:     d.Dev,
	}
}
