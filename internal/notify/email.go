package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/lead-intake/api/internal/entity"
)

// EmailSender defines the interface for sending emails.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      string
	Subject string
	Body    string // plain text part
	HTML    string // alternative HTML part
}

var leadHTMLTemplate = template.Must(template.New("lead").Parse(`<h2>New Lead - Website</h2>
<p><b>Name:</b> {{.Name}}</p>
<p><b>Brand:</b> {{.Brand}}</p>
<p><b>Contact:</b> {{if .ContactHref}}<a href="{{.ContactHref}}">{{.Contact}}</a>{{else}}{{.Contact}}{{end}}</p>
<p><b>Source:</b> {{.Source}}</p>
`))

type leadView struct {
	entity.Lead
	ContactHref template.URL
}

// LeadSubject formats the notification subject line.
func LeadSubject(lead entity.Lead) string {
	return fmt.Sprintf("New Lead: %s · %s", lead.Name, lead.Brand)
}

// BuildLeadEmail composes the notification for a captured lead. region is the
// default region used to read phone contacts without a country prefix.
func BuildLeadEmail(lead entity.Lead, to, region string) (EmailMessage, error) {
	var html bytes.Buffer
	view := leadView{Lead: lead, ContactHref: template.URL(contactHref(lead.Contact, region))}
	if err := leadHTMLTemplate.Execute(&html, view); err != nil {
		return EmailMessage{}, fmt.Errorf("render lead email: %w", err)
	}

	var text strings.Builder
	text.WriteString("New Lead - Website\n\n")
	fmt.Fprintf(&text, "Name: %s\n", lead.Name)
	fmt.Fprintf(&text, "Brand: %s\n", lead.Brand)
	fmt.Fprintf(&text, "Contact: %s\n", lead.Contact)
	fmt.Fprintf(&text, "Source: %s\n", lead.Source)

	return EmailMessage{
		To:      to,
		Subject: LeadSubject(lead),
		Body:    text.String(),
		HTML:    html.String(),
	}, nil
}

// contactHref returns a mailto: or tel: link for the contact, or "" when the
// contact cannot be turned into one.
func contactHref(contact, region string) string {
	if local, domain, ok := strings.Cut(contact, "@"); ok {
		ascii, err := idna.Lookup.ToASCII(domain)
		if err != nil || ascii == "" {
			return ""
		}
		// The local part is escaped so '?' and '#' cannot start headers or a fragment.
		return "mailto:" + url.PathEscape(local) + "@" + ascii
	}

	if region == "" {
		region = "US"
	}
	number, err := phonenumbers.Parse(contact, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsPossibleNumber(number) {
		return ""
	}
	return "tel:" + phonenumbers.Format(number, phonenumbers.E164)
}
