package worktime

type ConfigResponse struct {
	Config    WorkTimeConfig `json:"config"`
	Source    string         `json:"source"`
	Stale     bool           `json:"stale"`
	FetchedAt *string        `json:"fetched_at,omitempty"`
	Warning   string         `json:"warning,omitempty"`
}

type GetConfigQuery struct {
	Refresh bool `form:"refresh"`
}
