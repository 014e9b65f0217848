package templating

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/xavierca1/ghostreach/internal/entity"
)

// BuiltinPersonas are the market configurations persona rotation picks from.
var BuiltinPersonas = []entity.MarketConfig{
	{
		Industry: "Cybersecurity",
		BuyerPersonas: []entity.Persona{
			{Role: "Founder", PainPoints: []string{"data breaches", "compliance", "customer trust"}},
			{Role: "CTO", PainPoints: []string{"vulnerability management", "incident response", "security budgets"}},
		},
		Template: "Hello {name},\n\nOur automated scans detected potential exposure of {company}'s data. " +
			"As a {role}, addressing breaches and {pain_points} is critical. We offer a free audit and recommendations.\n\n" +
			"Best regards,\nGhostReach Security Team",
	},
	{
		Industry: "SaaS",
		BuyerPersonas: []entity.Persona{
			{Role: "CEO", PainPoints: []string{"user data leaks", "platform security", "brand reputation"}},
			{Role: "Head of Engineering", PainPoints: []string{"security monitoring", "incident response", "compliance"}},
		},
		Template: "Hi {name},\n\nWe see that {company} may be affected by a recent exposure. " +
			"As {role}, ensuring platform integrity and solving {pain_points} is important. Here's how we can help.\n\n" +
			"Cheers,\nGhostReach Team",
	},
	{
		Industry: "E-commerce",
		BuyerPersonas: []entity.Persona{
			{Role: "Owner", PainPoints: []string{"customer data protection", "payment security", "trust signals"}},
			{Role: "Security Lead", PainPoints: []string{"PCI compliance", "fraud detection", "breach prevention"}},
		},
		Template: "Dear {name},\n\nWe identified that {company}'s online store might have compromised data. " +
			"As {role}, tackling {pain_points} is top priority. We can provide an immediate security assessment.\n\n" +
			"Regards,\nGhostReach",
	},
}

// RotatePersona returns a copy of one of the built-in market configurations.
func RotatePersona(rng *rand.Rand) entity.MarketConfig {
	picked := BuiltinPersonas[rng.IntN(len(BuiltinPersonas))]
	picked.BuyerPersonas = slices.Clone(picked.BuyerPersonas)
	return picked
}

// Fields collects the values a template may reference for one lead.
func Fields(lead entity.Lead, cfg *entity.MarketConfig) map[string]string {
	fields := map[string]string{
		"name":    lead.Name,
		"email":   lead.Email,
		"role":    lead.Role,
		"company": lead.Company,
	}
	if cfg == nil {
		return fields
	}
	if cfg.Industry != "" {
		fields["industry"] = cfg.Industry
	}
	if persona, ok := cfg.PersonaFor(lead.Role); ok {
		fields["pain_points"] = strings.Join(persona.PainPoints, ", ")
	}
	return fields
}

// TemplateFor prefers the template of the persona matching the lead role,
// then the top-level template, then the default greeting.
func TemplateFor(lead entity.Lead, cfg *entity.MarketConfig) string {
	if cfg != nil {
		for _, p := range cfg.BuyerPersonas {
			if p.Template != "" && strings.EqualFold(p.Role, lead.Role) {
				return p.Template
			}
		}
	}
	return cfg.TemplateOrDefault()
}
