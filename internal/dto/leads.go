package dto

// LeadRequest is the payload accepted by POST /api/leads.
type LeadRequest struct {
	Name    string `json:"name"`
	Brand   string `json:"brand"`
	Contact string `json:"contact"`
}

// LeadResponse acknowledges a captured lead.
type LeadResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
