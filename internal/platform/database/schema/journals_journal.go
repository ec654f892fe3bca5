package schema

// JournalsJournalTable represents the 'journals.journal' table
type JournalsJournalTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// JournalsJournal is the schema definition for journals.journal
var JournalsJournal = JournalsJournalTable{
	Table:       "journals.journal",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t JournalsJournalTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
