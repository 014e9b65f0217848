package entity

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Persona pairs a buyer role with the pain points quoted in outreach. Extra
// holds persona keys this program does not know about.
type Persona struct {
	Role       string         `json:"role"`
	PainPoints []string       `json:"pain_points,omitempty"`
	Template   string         `json:"template,omitempty"`
	Extra      map[string]any `json:"-"`

	// painPointsRaw is the decoded pain_points value when the file did not
	// hold a list of strings. It is written back unchanged.
	painPointsRaw any
}

var personaKeys = []string{"role", "pain_points", "template"}

func (p *Persona) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Persona{}
	if v, ok := raw["role"]; ok && v != nil {
		out.Role = fmt.Sprint(v)
	}
	if v, ok := raw["template"]; ok && v != nil {
		s, isString := v.(string)
		if !isString {
			return fmt.Errorf("persona template must be a string, got %T", v)
		}
		out.Template = s
	}
	if v, ok := raw["pain_points"]; ok {
		out.PainPoints = painPointsFrom(v)
		if !isStringList(v) {
			out.painPointsRaw = v
		}
	}

	for _, k := range personaKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		out.Extra = raw
	}
	*p = out
	return nil
}

func (p Persona) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+len(personaKeys))
	for k, v := range p.Extra {
		out[k] = v
	}
	out["role"] = p.Role
	switch {
	case p.painPointsRaw != nil && slices.Equal(p.PainPoints, painPointsFrom(p.painPointsRaw)):
		out["pain_points"] = p.painPointsRaw
	case p.PainPoints != nil:
		out["pain_points"] = p.PainPoints
	}
	if p.Template != "" {
		out["template"] = p.Template
	}
	return json.Marshal(out)
}

// painPointsFrom accepts a list or a single value. A string is kept whole:
// "cost, speed" renders the same as ["cost", "speed"].
func painPointsFrom(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	default:
		return []string{fmt.Sprint(t)}
	}
}

func isStringList(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}

// MarketConfig is the outreach configuration file. Extra holds keys this
// program does not know about so a rewrite keeps them.
type MarketConfig struct {
	Industry      string         `json:"industry,omitempty"`
	BuyerPersonas []Persona      `json:"buyer_personas,omitempty"`
	Template      string         `json:"template,omitempty"`
	Extra         map[string]any `json:"-"`
}

const DefaultTemplate = "Hello, {name}!"

func (c *MarketConfig) TemplateOrDefault() string {
	if c == nil || c.Template == "" {
		return DefaultTemplate
	}
	return c.Template
}

// PersonaFor returns the persona whose role matches, falling back to the
// first persona. ok is false when there are no personas at all.
func (c *MarketConfig) PersonaFor(role string) (Persona, bool) {
	if c == nil || len(c.BuyerPersonas) == 0 {
		return Persona{}, false
	}
	for _, p := range c.BuyerPersonas {
		if strings.EqualFold(p.Role, role) {
			return p, true
		}
	}
	return c.BuyerPersonas[0], true
}

var marketConfigKeys = []string{"industry", "buyer_personas", "template"}

func (c *MarketConfig) UnmarshalJSON(data []byte) error {
	type plain MarketConfig
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range marketConfigKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		p.Extra = raw
	}
	*c = MarketConfig(p)
	return nil
}

func (c MarketConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+len(marketConfigKeys))
	for k, v := range c.Extra {
		out[k] = v
	}
	if c.Industry != "" {
		out["industry"] = c.Industry
	}
	if len(c.BuyerPersonas) > 0 {
		out["buyer_personas"] = c.BuyerPersonas
	}
	if c.Template != "" {
		out["template"] = c.Template
	}
	return json.Marshal(out)
}
