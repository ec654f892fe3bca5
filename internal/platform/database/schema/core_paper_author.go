package schema

// CorePaperAuthorTable represents the 'core.paper_author' table
type CorePaperAuthorTable struct {
	Table       string
	PaperID     string
	UserID      string
	AuthorOrder string
	IsOwner     string
	Role        string
}

// CorePaperAuthor is the schema definition for core.paper_author
var CorePaperAuthor = CorePaperAuthorTable{
	Table:       "core.paper_author",
	PaperID:     "paperid",
	UserID:      "userid",
	AuthorOrder: "authororder",
	IsOwner:     "isowner",
	Role:        "role",
}
