// Package insight derives display metrics from a fetched profile.
// Everything here is deterministic and network-free; nothing feeds back
// into the upstream fit score.
package insight

import (
	"math"
	"strings"

	"github.com/honei/prospect-cli/internal/model"
)

// SubScores are informational 0-100 factor scores shown alongside the
// upstream fitScore.
type SubScores struct {
	VolumePotential       int `json:"volumePotential"`
	OperationalComplexity int `json:"operationalComplexity"`
	PainPointLikelihood   int `json:"painPointLikelihood"`
	DigitalMaturity       int `json:"digitalMaturity"`
}

// DeriveSubScores computes the four factor scores from profile fields.
func DeriveSubScores(p *model.BusinessProfile) SubScores {
	fit := p.HoneiAnalysis.FitScore

	volumeBoost := 0.0
	volume := strings.ToLower(p.EstimatedVolume)
	switch {
	case strings.Contains(volume, "alto"):
		volumeBoost = 15
	case strings.Contains(volume, "medio"):
		volumeBoost = 8
	}

	payments := len(p.OperationalInfo.PaymentMethods)
	if payments == 0 {
		payments = 1
	}

	return SubScores{
		VolumePotential:       capped(int(math.Round(fit*0.7 + volumeBoost))),
		OperationalComplexity: capped(50 + 10*payments),
		PainPointLikelihood:   capped(40 + 10*len(p.PainPoints)),
		DigitalMaturity:       capped(30 + 12*len(p.TechStack)),
	}
}

func capped(n int) int {
	if n > 100 {
		return 100
	}
	return n
}

// Outreach angle copy, keyed by the first matching pain-point rule.
const (
	AngleSpeed       = "Rapidez en el cobro y reducción de esperas"
	AngleCashControl = "Cierre automático y control de caja"
	AngleTips        = "Aumento de propinas y control de pagos"
	AngleCommissions = "Ahorro de comisiones y conciliación bancaria"
)

// angleRules are evaluated in order; the first hit wins.
var angleRules = []struct {
	keywords []string
	angle    string
}{
	{[]string{"cola", "espera"}, AngleSpeed},
	{[]string{"descuadre", "caja"}, AngleCashControl},
	{[]string{"propina"}, AngleTips},
}

// OutreachAngle picks the pitch to lead with, from the lowercased
// concatenation of the profile's pain points.
func OutreachAngle(p *model.BusinessProfile) string {
	haystack := strings.ToLower(strings.Join(p.PainPoints, " "))
	for _, rule := range angleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.angle
			}
		}
	}
	return AngleCommissions
}

// Next-step guidance bands over fitScore; lower bounds inclusive.
const (
	NextStepSkip      = "No invertir tiempo: prioriza otros leads o envía un email ligero"
	NextStepValidate  = "Envía un email corto y valida el decisor antes de insistir"
	NextStepMultiChan = "Prioriza contacto multicanal con propuesta personalizada"
)

// NextStep maps a fit score to outreach guidance.
func NextStep(fitScore float64) string {
	switch {
	case fitScore < 45:
		return NextStepSkip
	case fitScore < 65:
		return NextStepValidate
	default:
		return NextStepMultiChan
	}
}

// EmailConfidence maps a bounce risk to the confidence label shown next
// to a suggested address.
func EmailConfidence(risk model.BounceRisk) string {
	switch risk {
	case model.BounceRiskBajo:
		return "Alta"
	case model.BounceRiskMedio:
		return "Media"
	default:
		return "Baja"
	}
}
