package schema

// JournalsMemberTable represents the 'journals.member' table
type JournalsMemberTable struct {
	Table       string
	JournalID   string
	UserID      string
	Permissions string
	CreatedAt   string
}

// JournalsMember is the schema definition for journals.member.
// Permissions holds one of: owner, editor, reviewer. A partial unique index
// on (journalid) WHERE permissions = 'owner' keeps the owner unique.
var JournalsMember = JournalsMemberTable{
	Table:       "journals.member",
	JournalID:   "journalid",
	UserID:      "userid",
	Permissions: "permissions",
	CreatedAt:   "createdat",
}
