package templating

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ghostreach/internal/entity"
)

func TestRotatePersona_ReturnsCopy(t *testing.T) {
	cfg := RotatePersona(rand.New(rand.NewPCG(3, 4)))

	require.NotEmpty(t, cfg.Industry)
	require.NotEmpty(t, cfg.BuyerPersonas)

	cfg.BuyerPersonas[0].Role = "changed"
	for _, builtin := range BuiltinPersonas {
		assert.NotEqual(t, "changed", builtin.BuyerPersonas[0].Role)
	}
}

func TestBuiltinPersonaTemplatesRender(t *testing.T) {
	lead := entity.Lead{Email: "ceo@acme.io", Name: "ceo", Role: "Founder", Company: "acme"}

	for _, cfg := range BuiltinPersonas {
		cfg := cfg
		_, err := Render(TemplateFor(lead, &cfg), Fields(lead, &cfg))
		assert.NoError(t, err, cfg.Industry)
	}
}

func TestFields_PainPointsFollowRole(t *testing.T) {
	cfg := &entity.MarketConfig{
		Industry: "SaaS",
		BuyerPersonas: []entity.Persona{
			{Role: "CEO", PainPoints: []string{"leaks", "reputation"}},
			{Role: "CTO", PainPoints: []string{"monitoring"}},
		},
	}

	fields := Fields(entity.Lead{Name: "a", Role: "cto"}, cfg)
	assert.Equal(t, "monitoring", fields["pain_points"])
	assert.Equal(t, "SaaS", fields["industry"])

	fields = Fields(entity.Lead{Name: "a", Role: "Founder"}, cfg)
	assert.Equal(t, "leaks, reputation", fields["pain_points"])

	fields = Fields(entity.Lead{Name: "a"}, nil)
	assert.NotContains(t, fields, "pain_points")
	assert.Equal(t, "a", fields["name"])
}

func TestTemplateFor(t *testing.T) {
	cfg := &entity.MarketConfig{
		Template: "Hi {name}",
		BuyerPersonas: []entity.Persona{
			{Role: "CTO", Template: "Dear CTO {name}"},
		},
	}

	assert.Equal(t, "Dear CTO {name}", TemplateFor(entity.Lead{Role: "CTO"}, cfg))
	assert.Equal(t, "Hi {name}", TemplateFor(entity.Lead{Role: "CEO"}, cfg))
	assert.Equal(t, entity.DefaultTemplate, TemplateFor(entity.Lead{}, nil))
}
