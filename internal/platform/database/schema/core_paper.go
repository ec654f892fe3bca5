package schema

// CorePaperTable represents the 'core.paper' table
type CorePaperTable struct {
	Table        string
	ID           string
	Title        string
	IsDraft      string
	ShowPreprint string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// CorePaper is the schema definition for core.paper
var CorePaper = CorePaperTable{
	Table:        "core.paper",
	ID:           "id",
	Title:        "title",
	IsDraft:      "isdraft",
	ShowPreprint: "showpreprint",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	DeletedAt:    "deletedat",
}

func (t CorePaperTable) Columns() []string {
	return []string{t.ID, t.Title, t.IsDraft, t.ShowPreprint, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
