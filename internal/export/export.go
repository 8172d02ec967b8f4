// Package export writes history entries to operator-facing formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/honei/prospect-cli/internal/insight"
	"github.com/honei/prospect-cli/internal/model"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", eris.Errorf("export: unknown format %q (json, yaml, xlsx)", s)
}

// Write encodes profiles to w in the given format.
func Write(w io.Writer, profiles []model.BusinessProfile, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(profiles), "export: encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return eris.Wrap(enc.Encode(profiles), "export: encode yaml")
	case FormatXLSX:
		return writeXLSX(w, profiles)
	}
	return eris.Errorf("export: unknown format %q", format)
}

// xlsxHeader is the column layout of the leads sheet.
var xlsxHeader = []string{
	"Negocio", "Ciudad", "Dirección", "Contacto principal", "Cargo",
	"Email", "Teléfono", "Fit", "Volumen", "Ángulo recomendado",
	"Próximo paso", "Estado CRM", "Notas", "Fuentes",
}

func writeXLSX(w io.Writer, profiles []model.BusinessProfile) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range xlsxHeader {
		header.AddCell().Value = h
	}

	for i := range profiles {
		p := &profiles[i]

		contactName, contactRole := "", ""
		if c := p.PrimaryContact(); c != nil {
			contactName, contactRole = c.Name, c.Role
		}

		row := sheet.AddRow()
		for _, v := range []string{
			p.BusinessName,
			p.City,
			p.FullAddress,
			contactName,
			contactRole,
			p.DirectContacts.Email,
			p.DirectContacts.Phone,
			fmt.Sprintf("%.0f", p.HoneiAnalysis.FitScore),
			p.EstimatedVolume,
			insight.OutreachAngle(p),
			insight.NextStep(p.HoneiAnalysis.FitScore),
			string(p.CRMStatus),
			p.Notes,
			fmt.Sprintf("%d", len(p.GoogleSearchSources)),
		} {
			row.AddCell().Value = v
		}
	}

	return eris.Wrap(f.Write(w), "export: write xlsx")
}
