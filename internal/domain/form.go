package domain

// Form field names as they appear in the submitted payload
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldOrigin      = "origin"
	FieldDestination = "destination"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldTravelers   = "travelers"
	FieldConsent     = "consent"
	FieldWebsite     = "website" // honeypot, hidden from humans
	FieldReplyTo     = "_replyto"
)

// RequiredFields are checked in order; the first empty one is reported
var RequiredFields = []string{
	FieldName,
	FieldEmail,
	FieldOrigin,
	FieldDestination,
	FieldStartDate,
	FieldEndDate,
	FieldTravelers,
}

// FormState is a snapshot of the quote form at submit time
type FormState struct {
	Name        string            `yaml:"name"`
	Email       string            `yaml:"email"`
	Origin      string            `yaml:"origin"`
	Destination string            `yaml:"destination"`
	StartDate   string            `yaml:"startDate"` // YYYY-MM-DD
	EndDate     string            `yaml:"endDate"`   // YYYY-MM-DD
	Travelers   string            `yaml:"travelers"`
	Consent     bool              `yaml:"consent"`
	Website     string            `yaml:"website"`
	Extra       map[string]string `yaml:"extra,omitempty"` // optional fields, sent verbatim
}

// Value returns the raw value of a named field ("" for unknown names)
func (f FormState) Value(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldOrigin:
		return f.Origin
	case FieldDestination:
		return f.Destination
	case FieldStartDate:
		return f.StartDate
	case FieldEndDate:
		return f.EndDate
	case FieldTravelers:
		return f.Travelers
	case FieldWebsite:
		return f.Website
	case FieldConsent:
		if f.Consent {
			return "on"
		}
		return ""
	}
	return f.Extra[field]
}

// Payload returns every field value keyed by field name, the way a browser
// serializes the form: unchecked consent is omitted, the honeypot is always
// present. Reply-to is added by the controller.
func (f FormState) Payload() map[string]string {
	p := make(map[string]string, len(f.Extra)+len(RequiredFields)+3)
	for k, v := range f.Extra {
		p[k] = v
	}
	for _, name := range RequiredFields {
		p[name] = f.Value(name)
	}
	p[FieldWebsite] = f.Website
	if f.Consent {
		p[FieldConsent] = "on"
	}
	return p
}
