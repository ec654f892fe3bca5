package schema

// SystemFeatureTable represents the 'system.feature' table
type SystemFeatureTable struct {
	Table     string
	Name      string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// SystemFeature is the schema definition for system.feature
var SystemFeature = SystemFeatureTable{
	Table:     "system.feature",
	Name:      "name",
	Status:    "status",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
