package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/talentshive/training-site/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const sentLayout = "January 2, 2006 at 03:04 PM"

type Kind string

const (
	KindApplicationNotification Kind = "application_notification"
	KindApplicationConfirmation Kind = "application_confirmation"
	KindContactNotification     Kind = "contact_notification"
)

type templateData struct {
	Heading        string
	Tagline        string
	Brand          string
	Sent           string
	ReplyTo        string
	ReplyToURL     template.URL
	SiteURL        string
	Application    *models.Application
	ContactMessage *models.ContactMessage
}

// Renderer turns stored leads into HTML bodies. Every value is escaped by
// html/template.
type Renderer struct {
	brand     string
	siteURL   string
	templates map[Kind]*template.Template
}

func NewRenderer(brand, siteURL string) (*Renderer, error) {
	funcs := template.FuncMap{
		"present": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	r := &Renderer{
		brand:     brand,
		siteURL:   siteURL,
		templates: make(map[Kind]*template.Template),
	}
	for _, kind := range []Kind{KindApplicationNotification, KindApplicationConfirmation, KindContactNotification} {
		tmpl, err := template.New(string(kind)).
			Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+string(kind)+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", kind, err)
		}
		r.templates[kind] = tmpl
	}

	return r, nil
}

func (r *Renderer) render(kind Kind, data templateData) (string, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return "", fmt.Errorf("unknown template %s", kind)
	}

	data.Brand = r.brand
	data.SiteURL = r.siteURL

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", kind, err)
	}
	return buf.String(), nil
}

func (r *Renderer) ApplicationNotification(app *models.Application, sent time.Time) (string, error) {
	return r.render(KindApplicationNotification, templateData{
		Heading:     "New Course Application",
		Tagline:     r.brand + " Training Platform",
		Sent:        sent.Format(sentLayout),
		Application: app,
	})
}

func (r *Renderer) ApplicationConfirmation(app *models.Application, replyTo string) (string, error) {
	return r.render(KindApplicationConfirmation, templateData{
		Heading:     "Application Received!",
		Tagline:     "Thank you for applying to " + r.brand,
		ReplyTo:     replyTo,
		ReplyToURL:  template.URL("mailto:" + replyTo),
		Application: app,
	})
}

func (r *Renderer) ContactNotification(msg *models.ContactMessage, sent time.Time) (string, error) {
	return r.render(KindContactNotification, templateData{
		Heading:        "New Contact Message",
		Tagline:        r.brand + " Training Platform",
		Sent:           sent.Format(sentLayout),
		ContactMessage: msg,
	})
}
