package models

// PersonRecord is the final output unit of one scrape run: one structured
// profile pulled out of a single profile page. Field names are the wire
// contract of the JSON output and must not change.
type PersonRecord struct {
	NameTH     string `json:"name_th"`
	NameEN     string `json:"name_en"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	PhotoURL   string `json:"photo_url"`
	Info       string `json:"info"`
	Education  string `json:"education"`
	ProfileURL string `json:"profile_url"`
}

// IsEmpty reports whether no field besides the source URL carries data.
// Essentially-empty records are still valid output; this exists for
// diagnostics only.
func (r PersonRecord) IsEmpty() bool {
	return r.NameTH == "" && r.NameEN == "" && r.Position == "" &&
		r.Email == "" && r.PhotoURL == "" && r.Info == "" && r.Education == ""
}
