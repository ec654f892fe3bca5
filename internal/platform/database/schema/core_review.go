package schema

// CoreReviewTable represents the 'core.review' table
type CoreReviewTable struct {
	Table          string
	ID             string
	PaperID        string
	UserID         string
	Version        string
	Summary        string
	Recommendation string
	Status         string
	CreatedAt      string
	UpdatedAt      string
}

// CoreReview is the schema definition for core.review
var CoreReview = CoreReviewTable{
	Table:          "core.review",
	ID:             "id",
	PaperID:        "paperid",
	UserID:         "userid",
	Version:        "version",
	Summary:        "summary",
	Recommendation: "recommendation",
	Status:         "status",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t CoreReviewTable) Columns() []string {
	return []string{t.ID, t.PaperID, t.UserID, t.Version, t.Summary, t.Recommendation, t.Status, t.CreatedAt, t.UpdatedAt}
}
