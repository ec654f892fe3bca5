package schema

// CorePaperVersionTable represents the 'core.paper_version' table
type CorePaperVersionTable struct {
	Table       string
	PaperID     string
	Version     string
	FileKey     string
	ContentType string
	CreatedAt   string
}

// CorePaperVersion is the schema definition for core.paper_version
var CorePaperVersion = CorePaperVersionTable{
	Table:       "core.paper_version",
	PaperID:     "paperid",
	Version:     "version",
	FileKey:     "filekey",
	ContentType: "contenttype",
	CreatedAt:   "createdat",
}
