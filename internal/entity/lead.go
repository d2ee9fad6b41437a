package entity

import "strings"

// LeadSourceWebsite marks leads captured through the public intake form.
const LeadSourceWebsite = "website"

// Lead is a captured prospective-customer submission. It is built once per
// request and passed by value; nothing mutates it afterwards.
type Lead struct {
	Name    string `json:"name"`
	Brand   string `json:"brand"`
	Contact string `json:"contact"`
	Source  string `json:"source"`
}

// NewLead trims the display fields and stamps the website source. The caller
// must already have validated contact.
func NewLead(name, brand, contact string) Lead {
	return Lead{
		Name:    strings.TrimSpace(name),
		Brand:   strings.TrimSpace(brand),
		Contact: strings.TrimSpace(contact),
		Source:  LeadSourceWebsite,
	}
}
