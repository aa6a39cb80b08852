package collecting_test

import (
	"testing"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/collecting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTargets(t *testing.T) {
	targets := collecting.DefaultTargets("https://analytics.mlabs.io")

	assert.Equal(t, []string{
		"Adenis Facebook",
		"Adenis Instagram",
		"Facebook Tecnovix",
		"Tecnovix Instagram",
	}, collecting.TargetNames(targets))

	for _, target := range targets {
		assert.Equal(t, domain.FamilyFromName(target.Name), target.Family)
		assert.Contains(t, target.URL, "https://analytics.mlabs.io/")
		assert.Contains(t, target.URL, target.ID)
	}
}

func TestConfiguredTargets(t *testing.T) {
	targets := collecting.ConfiguredTargets([]string{
		"Adenis Facebook",
		" ",
		"Adenis Instagram",
		"X=Tecnovix Instagram",
	})

	assert.Equal(t, []domain.ReportTarget{
		{Code: "A", Name: "Adenis Facebook", Family: domain.FamilyFacebook},
		{Code: "B", Name: "Adenis Instagram", Family: domain.FamilyInstagram},
		{Code: "X", Name: "Tecnovix Instagram", Family: domain.FamilyInstagram},
	}, targets)
}

func TestConfiguredTargets_CodesPastZ(t *testing.T) {
	names := make([]string, 28)
	for i := range names {
		names[i] = "Relatório Facebook"
	}

	targets := collecting.ConfiguredTargets(names)

	require.Len(t, targets, 28)
	assert.Equal(t, "Z", targets[25].Code)
	assert.Equal(t, "AA", targets[26].Code)
	assert.Equal(t, "AB", targets[27].Code)
}
