package model

// VersionInfo reports the running build and the state of the holding schema.
// DbVersion is the applied goose version; LatestDbVersion is the newest
// migration embedded in the binary.
type VersionInfo struct {
	AppVersion       string          `json:"app_version"`
	DbVersion        string          `json:"db_version"`
	LatestDbVersion  string          `json:"latest_db_version"`
	Features         map[string]bool `json:"features"`
	MigrationNeeded  bool            `json:"migration_needed"`
	MigrationMessage *string         `json:"migration_message,omitempty"`
}
