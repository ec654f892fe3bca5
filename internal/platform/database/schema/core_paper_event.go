package schema

// CorePaperEventTable represents the 'core.paper_event' table
type CorePaperEventTable struct {
	Table      string
	ID         string
	PaperID    string
	ActorID    string
	Type       string
	Visibility string
	CreatedAt  string
}

// CorePaperEvent is the schema definition for core.paper_event.
// Visibility is a text[] column; membership is checked with array operators.
var CorePaperEvent = CorePaperEventTable{
	Table:      "core.paper_event",
	ID:         "id",
	PaperID:    "paperid",
	ActorID:    "actorid",
	Type:       "type",
	Visibility: "visibility",
	CreatedAt:  "createdat",
}
