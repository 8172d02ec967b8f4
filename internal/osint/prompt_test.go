package osint

import (
	"strings"
	"testing"
)

func TestSystemInstruction_CarriesOutputContract(t *testing.T) {
	sys := SystemInstruction()

	for _, field := range []string{
		`"businessName"`, `"strategicContacts"`, `"suggestedEmails"`,
		`"techStack"`, `"honeiAnalysis"`, `"osintNotes"`,
	} {
		if !strings.Contains(sys, field) {
			t.Errorf("system instruction missing required field %s", field)
		}
	}
	if strings.Contains(sys, "googleSearchSources") {
		t.Error("citation list must never be requested from the model")
	}
	if !strings.Contains(sys, "Solo datos públicos") {
		t.Error("compliance rules missing")
	}
}

func TestResearchPrompt_EmbedsTarget(t *testing.T) {
	p := ResearchPrompt("Bar Uno", "Madrid")

	if !strings.Contains(p, "Negocio: Bar Uno") {
		t.Error("prompt should name the business")
	}
	if !strings.Contains(p, "Ciudad: Madrid") {
		t.Error("prompt should name the city")
	}
	if !strings.Contains(p, `"CFO Bar Uno"`) {
		t.Error("prompt should include the decision-maker sub-search")
	}
	if !strings.Contains(p, "American Express") {
		t.Error("prompt should include the operational checklist")
	}
}
