package worklocation

type LocationRequest struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	Radius    float64  `json:"radius" binding:"required,gt=0"`
	Address   string   `json:"address"`
}

func (r LocationRequest) toEntity() WorkLocation {
	loc := WorkLocation{Name: r.Name, Radius: r.Radius, Address: r.Address}
	if r.Latitude != nil {
		loc.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		loc.Longitude = *r.Longitude
	}
	return loc
}

type ListResponse struct {
	Locations []WorkLocation `json:"locations"`
	Source    string         `json:"source"`
	Stale     bool           `json:"stale"`
	FetchedAt *string        `json:"fetched_at,omitempty"`
	Warning   string         `json:"warning,omitempty"`
}

type ListQuery struct {
	Refresh bool `form:"refresh"`
}
