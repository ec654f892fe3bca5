package schema

// JournalsSubmissionTable represents the 'journals.submission' table
type JournalsSubmissionTable struct {
	Table           string
	ID              string
	PaperID         string
	JournalID       string
	Status          string
	DecisionComment string
	SubmitterID     string
	CreatedAt       string
	UpdatedAt       string
}

// JournalsSubmission is the schema definition for journals.submission
var JournalsSubmission = JournalsSubmissionTable{
	Table:           "journals.submission",
	ID:              "id",
	PaperID:         "paperid",
	JournalID:       "journalid",
	Status:          "status",
	DecisionComment: "decisioncomment",
	SubmitterID:     "submitterid",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

func (t JournalsSubmissionTable) Columns() []string {
	return []string{t.ID, t.PaperID, t.JournalID, t.Status, t.DecisionComment, t.SubmitterID, t.CreatedAt, t.UpdatedAt}
}
