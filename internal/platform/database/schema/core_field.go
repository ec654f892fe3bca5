package schema

// CoreFieldTable represents the 'core.field' table
type CoreFieldTable struct {
	Table       string
	ID          string
	Name        string
	Type        string
	Description string
	ParentID    string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CoreField is the schema definition for core.field
var CoreField = CoreFieldTable{
	Table:       "core.field",
	ID:          "id",
	Name:        "name",
	Type:        "type",
	Description: "description",
	ParentID:    "parentid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CoreFieldTable) Columns() []string {
	return []string{t.ID, t.Name, t.Type, t.Description, t.ParentID, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
