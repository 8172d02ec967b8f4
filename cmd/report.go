package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/honei/prospect-cli/internal/insight"
	"github.com/honei/prospect-cli/internal/model"
)

// writeReport prints the operator-facing dossier summary.
func writeReport(w io.Writer, p *model.BusinessProfile) {
	fmt.Fprintf(w, "%s — %s\n", p.BusinessName, p.City)
	if p.FullAddress != "" {
		fmt.Fprintf(w, "  %s\n", p.FullAddress)
	}

	scores := insight.DeriveSubScores(p)
	fmt.Fprintf(w, "\nFit: %.0f/100 (%s)\n", p.HoneiAnalysis.FitScore, p.HoneiAnalysis.FitLabel)
	fmt.Fprintf(w, "  Volumen potencial:       %d\n", scores.VolumePotential)
	fmt.Fprintf(w, "  Complejidad operativa:   %d\n", scores.OperationalComplexity)
	fmt.Fprintf(w, "  Probabilidad de dolor:   %d\n", scores.PainPointLikelihood)
	fmt.Fprintf(w, "  Madurez digital:         %d\n", scores.DigitalMaturity)

	fmt.Fprintf(w, "\nÁngulo de entrada: %s\n", insight.OutreachAngle(p))
	fmt.Fprintf(w, "Próximo paso: %s\n", insight.NextStep(p.HoneiAnalysis.FitScore))

	if c := p.PrimaryContact(); c != nil {
		fmt.Fprintf(w, "\nContacto principal: %s, %s (%s)\n", c.Name, c.Role, c.Area)
	}
	if p.DirectContacts.Email != "" {
		fmt.Fprintf(w, "Email: %s\n", p.DirectContacts.Email)
	}
	if p.DirectContacts.Phone != "" {
		fmt.Fprintf(w, "Teléfono: %s\n", p.DirectContacts.Phone)
	}
	for _, se := range p.SuggestedEmails {
		fmt.Fprintf(w, "Email sugerido: %s (%s, confianza %s)\n",
			se.Email, se.Status, insight.EmailConfidence(se.BounceRisk))
	}

	if s := p.HoneiAnalysis.ExecutiveSummary; s != "" {
		fmt.Fprintf(w, "\n%s\n", s)
	}
	if len(p.PainPoints) > 0 {
		fmt.Fprintf(w, "\nPain points:\n")
		for _, pp := range p.PainPoints {
			fmt.Fprintf(w, "  - %s\n", pp)
		}
	}

	if len(p.GoogleSearchSources) > 0 {
		fmt.Fprintf(w, "\nFuentes (%d):\n", len(p.GoogleSearchSources))
		for _, s := range p.GoogleSearchSources {
			fmt.Fprintf(w, "  - %s (%s)\n", s.Title, s.URI)
		}
	}
}

// writeHistoryTable prints one dossier per line for the history list view.
func writeHistoryTable(w io.Writer, entries []model.BusinessProfile) {
	for i, p := range entries {
		contact := "-"
		if c := p.PrimaryContact(); c != nil {
			contact = c.Name
		}
		fmt.Fprintf(w, "%2d  %-12s %5.0f  %-30s %-20s %s\n",
			i, p.CRMStatus, p.HoneiAnalysis.FitScore,
			truncate(p.BusinessName, 30), truncate(p.City, 20), contact)
	}
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
