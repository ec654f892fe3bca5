package schema

// CoreRoleTable represents the 'core.role' table
type CoreRoleTable struct {
	Table            string
	ID               string
	Name             string
	ShortDescription string
	Description      string
	Type             string
	IsOwner          string
	JournalID        string
	PaperID          string
	CreatedAt        string
}

// CoreRole is the schema definition for core.role.
// A CHECK constraint enforces that exactly one of journalid/paperid is set.
var CoreRole = CoreRoleTable{
	Table:            "core.role",
	ID:               "id",
	Name:             "name",
	ShortDescription: "shortdescription",
	Description:      "description",
	Type:             "type",
	IsOwner:          "isowner",
	JournalID:        "journalid",
	PaperID:          "paperid",
	CreatedAt:        "createdat",
}

func (t CoreRoleTable) Columns() []string {
	return []string{t.ID, t.Name, t.ShortDescription, t.Description, t.Type, t.IsOwner, t.JournalID, t.PaperID, t.CreatedAt}
}
