package swagger

// Config carries the operator-provided document metadata. All fields are
// passed through into the info block and top-level document fields without
// interpretation; SecurityDefinitions in particular is emitted verbatim.
// Zero values fall back to the defaults below.
type Config struct {
	Title          string
	Version        string
	Description    string
	TermsOfService string
	ContactEmail   string
	LicenseName    string
	LicenseURL     string

	Host     string
	BasePath string
	Schemes  []string

	// ConsumesContentTypes and ProducesContentTypes are the document-wide
	// defaults applied to operations that do not override them.
	ConsumesContentTypes []string
	ProducesContentTypes []string

	SecurityDefinitions map[string]*SecurityScheme
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "API"
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}
	if len(c.Schemes) == 0 {
		c.Schemes = []string{"http"}
	}
	if len(c.ConsumesContentTypes) == 0 {
		c.ConsumesContentTypes = []string{"application/json"}
	}
	if len(c.ProducesContentTypes) == 0 {
		c.ProducesContentTypes = []string{"application/json"}
	}
	return c
}

func (c Config) info() Info {
	info := Info{
		Title:          c.Title,
		Description:    c.Description,
		TermsOfService: c.TermsOfService,
		Version:        c.Version,
	}
	if c.ContactEmail != "" {
		info.Contact = &Contact{Email: c.ContactEmail}
	}
	if c.LicenseName != "" || c.LicenseURL != "" {
		info.License = &License{Name: c.LicenseName, URL: c.LicenseURL}
	}
	return info
}
