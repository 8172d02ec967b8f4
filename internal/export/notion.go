package export

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/honei/prospect-cli/internal/insight"
	"github.com/honei/prospect-cli/internal/model"
	"github.com/honei/prospect-cli/pkg/notion"
)

// NotionPusher creates one lead page per profile in a Notion database.
type NotionPusher struct {
	client notion.Client
	dbID   string
}

// NewNotionPusher wires a Notion client to a target lead database.
func NewNotionPusher(client notion.Client, dbID string) *NotionPusher {
	return &NotionPusher{client: client, dbID: dbID}
}

// Push creates pages for the given profiles, in order. Returns the number
// of pages created; stops at the first failure.
func (p *NotionPusher) Push(ctx context.Context, profiles []model.BusinessProfile) (int, error) {
	created := 0
	for i := range profiles {
		if ctx.Err() != nil {
			return created, eris.Wrap(ctx.Err(), "export: notion push cancelled")
		}

		req := &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(p.dbID),
			},
			Properties: buildLeadProperties(&profiles[i]),
		}

		if _, err := p.client.CreatePage(ctx, req); err != nil {
			return created, eris.Wrapf(err, "export: create lead page for %q", profiles[i].BusinessName)
		}
		created++

		zap.L().Debug("lead page created",
			zap.String("business", profiles[i].BusinessName),
			zap.String("city", profiles[i].City))
	}
	return created, nil
}

// buildLeadProperties converts a profile to Notion page properties.
// "Name" becomes the title property, the fit score a number, the CRM
// status a select; everything else is rich_text.
func buildLeadProperties(p *model.BusinessProfile) notionapi.Properties {
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Type: notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{
				{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: p.BusinessName}},
			},
		},
		"Fit Score": notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: p.HoneiAnalysis.FitScore,
		},
		"Estado": notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: string(p.CRMStatus)},
		},
	}

	richText := map[string]string{
		"Ciudad":        p.City,
		"Dirección":     p.FullAddress,
		"Email":         p.DirectContacts.Email,
		"Teléfono":      p.DirectContacts.Phone,
		"Ángulo":        insight.OutreachAngle(p),
		"Próximo paso":  insight.NextStep(p.HoneiAnalysis.FitScore),
		"Resumen":       p.HoneiAnalysis.ExecutiveSummary,
		"Pain points":   strings.Join(p.PainPoints, "; "),
		"Notas":         p.Notes,
	}
	if c := p.PrimaryContact(); c != nil {
		richText["Contacto"] = c.Name + " (" + c.Role + ")"
	}

	for k, v := range richText {
		if v == "" {
			continue
		}
		props[k] = notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: v}},
			},
		}
	}

	if u := firstSourceURL(p); u != "" {
		props["URL"] = notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  u,
		}
	}

	return props
}

// firstSourceURL returns the first grounding citation URL, if any.
func firstSourceURL(p *model.BusinessProfile) string {
	for _, s := range p.GoogleSearchSources {
		if strings.TrimSpace(s.URI) != "" {
			return s.URI
		}
	}
	return ""
}
