package cmd

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	TeamsWebhookURL string
	InflowAPIURL    string
	InflowCompanyID string
	InflowAPIKey    string
}

// DatabaseConfigured reports whether enough settings are present to open a
// Postgres connection. Without them the service runs on the in-memory store.
func (c Config) DatabaseConfigured() bool {
	return c.DBHost != "" && c.DBName != "" && c.DBUser != ""
}

// InflowConfigured reports whether the upstream sales order API is reachable.
// Sync endpoints stay mounted either way; runs fail fast when unconfigured.
func (c Config) InflowConfigured() bool {
	return c.InflowAPIURL != "" && c.InflowCompanyID != "" && c.InflowAPIKey != ""
}
