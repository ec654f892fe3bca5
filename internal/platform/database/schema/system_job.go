package schema

// SystemJobTable represents the 'system.job' table
type SystemJobTable struct {
	Table      string
	ID         string
	Name       string
	Status     string
	Payload    string
	LastError  string
	CreatedAt  string
	StartedAt  string
	FinishedAt string
}

// SystemJob is the schema definition for system.job
var SystemJob = SystemJobTable{
	Table:      "system.job",
	ID:         "id",
	Name:       "name",
	Status:     "status",
	Payload:    "payload",
	LastError:  "lasterror",
	CreatedAt:  "createdat",
	StartedAt:  "startedat",
	FinishedAt: "finishedat",
}

func (t SystemJobTable) Columns() []string {
	return []string{t.ID, t.Name, t.Status, t.Payload, t.LastError, t.CreatedAt, t.StartedAt, t.FinishedAt}
}
