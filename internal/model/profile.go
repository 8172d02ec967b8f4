// Package model holds the shared data contract for researched businesses.
package model

import "strings"

// CRMStatus tracks where a lead sits in the outreach funnel.
type CRMStatus string

const (
	CRMStatusNuevo       CRMStatus = "Nuevo"
	CRMStatusCualificado CRMStatus = "Cualificado"
	CRMStatusContactado  CRMStatus = "Contactado"
	CRMStatusRespuesta   CRMStatus = "Respuesta"
	CRMStatusDescartado  CRMStatus = "Descartado"
)

// ContactArea classifies a strategic contact's sphere of influence.
type ContactArea string

const (
	AreaFinanzas    ContactArea = "Finanzas"
	AreaOperaciones ContactArea = "Operaciones"
	AreaTecnologia  ContactArea = "Tecnología"
	AreaPropiedad   ContactArea = "Propiedad"
	AreaOtros       ContactArea = "Otros"
)

// Confidence is the upstream's Alto/Medio/Bajo scale.
type Confidence string

const (
	ConfidenceAlto  Confidence = "Alto"
	ConfidenceMedio Confidence = "Medio"
	ConfidenceBajo  Confidence = "Bajo"
)

// ContactStatus marks whether a channel was published or inferred.
type ContactStatus string

const (
	StatusPublico  ContactStatus = "Público"
	StatusInferido ContactStatus = "Inferido"
)

// BounceRisk is the deliverability risk estimate for a suggested email.
type BounceRisk string

const (
	BounceRiskBajo  BounceRisk = "Bajo"
	BounceRiskMedio BounceRisk = "Medio"
	BounceRiskAlto  BounceRisk = "Alto"
)

// Owner is a named business owner.
type Owner struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// StrategicContact is a person with influence over a purchase decision.
// Element 0 serves as the default primary contact when no better match exists.
type StrategicContact struct {
	Name            string      `json:"name"`
	Role            string      `json:"role"`
	Area            ContactArea `json:"area"`
	Relevance       string      `json:"relevance"`
	Validity        string      `json:"validity"`
	Confidence      Confidence  `json:"confidence"`
	Source          string      `json:"source"`
	SecondarySource string      `json:"secondarySource,omitempty"`
}

// LegalInfo holds registry-level identity of the business.
type LegalInfo struct {
	LegalName string   `json:"legalName"`
	Owners    []string `json:"owners"`
}

// DirectContacts are the published reachability details.
type DirectContacts struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SuggestedEmail is a candidate outreach address with provenance.
type SuggestedEmail struct {
	Email      string        `json:"email"`
	Status     ContactStatus `json:"status"`
	Source     string        `json:"source"`
	BounceRisk BounceRisk    `json:"bounceRisk"`
}

// ContactChannel is any other reachability channel (form, social, phone).
type ContactChannel struct {
	Type   string        `json:"type"`
	Data   string        `json:"data"`
	Status ContactStatus `json:"status"`
	Source string        `json:"source"`
}

// TechStackItem is a detected software/hardware provider.
type TechStackItem struct {
	Category string `json:"category"`
	Provider string `json:"provider"`
}

// OperationalInfo captures observable day-to-day operations.
type OperationalInfo struct {
	MenuType       string   `json:"menuType"`
	OrderingSystem string   `json:"orderingSystem"`
	PaymentMethods []string `json:"paymentMethods"`
	Terrace        *bool    `json:"terrace,omitempty"`
	Reservations   *bool    `json:"reservations,omitempty"`
	Amex           *bool    `json:"amex,omitempty"`
	DigitalMenuURL string   `json:"digitalMenuUrl,omitempty"`
}

// SwotAnalysis is the classic four-quadrant summary.
type SwotAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// HoneiAnalysis is the product-fit assessment for Honei Terminal.
type HoneiAnalysis struct {
	FitScore         float64  `json:"fitScore"`
	FitLabel         string   `json:"fitLabel"`
	ExecutiveSummary string   `json:"executiveSummary"`
	Reasoning        string   `json:"reasoning"`
	MatchedFeatures  []string `json:"matchedFeatures"`
}

// OsintNotes records what could not be verified and how to verify it.
type OsintNotes struct {
	Unverified        string `json:"unverified"`
	VerificationSteps string `json:"verificationSteps"`
}

// SearchSource is a grounding citation attached post-hoc from the
// backend's grounding metadata. Never requested from the model itself.
type SearchSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// BusinessProfile is the central entity, one per researched business.
// Field names mirror the JSON shape the research prompt demands.
type BusinessProfile struct {
	BusinessName string `json:"businessName"`
	City         string `json:"city"`
	FullAddress  string `json:"fullAddress"`

	Owners            []Owner            `json:"owners"`
	StrategicContacts []StrategicContact `json:"strategicContacts"`
	LegalInfo         LegalInfo          `json:"legalInfo"`
	DirectContacts    DirectContacts     `json:"directContacts"`
	EmailDomain       string             `json:"emailDomain"`
	SuggestedEmails   []SuggestedEmail   `json:"suggestedEmails"`
	ContactChannels   []ContactChannel   `json:"contactChannels"`

	TechStack       []TechStackItem `json:"techStack"`
	OperationalInfo OperationalInfo `json:"operationalInfo"`
	Swot            SwotAnalysis    `json:"swot"`
	EstimatedVolume string          `json:"estimatedVolume"`
	PainPoints      []string        `json:"painPoints"`

	HoneiAnalysis HoneiAnalysis `json:"honeiAnalysis"`
	OsintNotes    OsintNotes    `json:"osintNotes"`

	GoogleSearchSources []SearchSource `json:"googleSearchSources"`

	// CRM extension, defaulted by Normalize on first load.
	CRMStatus      CRMStatus `json:"crmStatus,omitempty"`
	NextAction     string    `json:"nextAction,omitempty"`
	Notes          string    `json:"notes"`
	OutreachStatus string    `json:"outreachStatus,omitempty"`
}

// ProfileKey is the dedup identity: exact (businessName, city).
type ProfileKey struct {
	BusinessName string
	City         string
}

// Key returns the dedup identity for this profile.
func (p *BusinessProfile) Key() ProfileKey {
	return ProfileKey{BusinessName: p.BusinessName, City: p.City}
}

// Normalize enforces the schema invariant: every optional collection is a
// non-nil (possibly empty) slice, and CRM fields carry their defaults.
// Presentation code iterates these unconditionally.
func (p *BusinessProfile) Normalize() {
	if p.Owners == nil {
		p.Owners = []Owner{}
	}
	if p.StrategicContacts == nil {
		p.StrategicContacts = []StrategicContact{}
	}
	if p.LegalInfo.Owners == nil {
		p.LegalInfo.Owners = []string{}
	}
	if p.SuggestedEmails == nil {
		p.SuggestedEmails = []SuggestedEmail{}
	}
	if p.ContactChannels == nil {
		p.ContactChannels = []ContactChannel{}
	}
	if p.TechStack == nil {
		p.TechStack = []TechStackItem{}
	}
	if p.OperationalInfo.PaymentMethods == nil {
		p.OperationalInfo.PaymentMethods = []string{}
	}
	if p.Swot.Strengths == nil {
		p.Swot.Strengths = []string{}
	}
	if p.Swot.Weaknesses == nil {
		p.Swot.Weaknesses = []string{}
	}
	if p.Swot.Opportunities == nil {
		p.Swot.Opportunities = []string{}
	}
	if p.Swot.Threats == nil {
		p.Swot.Threats = []string{}
	}
	if p.HoneiAnalysis.MatchedFeatures == nil {
		p.HoneiAnalysis.MatchedFeatures = []string{}
	}
	if p.PainPoints == nil {
		p.PainPoints = []string{}
	}
	if p.GoogleSearchSources == nil {
		p.GoogleSearchSources = []SearchSource{}
	}

	if p.CRMStatus == "" {
		p.CRMStatus = CRMStatusNuevo
	}
	if p.NextAction == "" {
		p.NextAction = "Generar email"
	}
	if p.OutreachStatus == "" {
		p.OutreachStatus = "Pendiente"
	}
}

// PrimaryContact returns the financial decision maker when identified,
// otherwise the first strategic contact, otherwise nil.
func (p *BusinessProfile) PrimaryContact() *StrategicContact {
	for i := range p.StrategicContacts {
		if p.StrategicContacts[i].Area == AreaFinanzas {
			return &p.StrategicContacts[i]
		}
	}
	if len(p.StrategicContacts) > 0 {
		return &p.StrategicContacts[0]
	}
	return nil
}

// ValidCRMStatus reports whether s is one of the known funnel states.
func ValidCRMStatus(s string) bool {
	switch CRMStatus(strings.TrimSpace(s)) {
	case CRMStatusNuevo, CRMStatusCualificado, CRMStatusContactado, CRMStatusRespuesta, CRMStatusDescartado:
		return true
	}
	return false
}
