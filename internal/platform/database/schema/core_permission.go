package schema

// CorePermissionTable represents the 'core.permission' table
type CorePermissionTable struct {
	Table        string
	ID           string
	UserID       string
	RoleID       string
	Resource     string
	Action       string
	PaperID      string
	Version      string
	EventID      string
	ReviewID     string
	CommentID    string
	SubmissionID string
	JournalID    string
}

// CorePermission is the schema definition for core.permission.
// A CHECK constraint enforces that exactly one of userid/roleid is set.
// The scoping id columns narrow which entity instance the grant applies to;
// all may be null for a type-wide grant.
var CorePermission = CorePermissionTable{
	Table:        "core.permission",
	ID:           "id",
	UserID:       "userid",
	RoleID:       "roleid",
	Resource:     "resource",
	Action:       "action",
	PaperID:      "paperid",
	Version:      "version",
	EventID:      "eventid",
	ReviewID:     "reviewid",
	CommentID:    "commentid",
	SubmissionID: "submissionid",
	JournalID:    "journalid",
}
