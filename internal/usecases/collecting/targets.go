package collecting

import (
	"strings"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
)

// DefaultTargets são os quatro relatórios de negócio coletados.
// As URLs são substituídas pelas encontradas na listagem a cada execução.
func DefaultTargets(baseURL string) []domain.ReportTarget {
	targets := []domain.ReportTarget{
		{Code: "A", ID: "685edc6e06042600371c10a7", Name: "Adenis Facebook", Family: domain.FamilyFacebook},
		{Code: "B", ID: "685edc1d06042600371c0778", Name: "Adenis Instagram", Family: domain.FamilyInstagram},
		{Code: "C", ID: "685edb4e06042600371bf224", Name: "Facebook Tecnovix", Family: domain.FamilyFacebook},
		{Code: "D", ID: "685edabb06042600371bd88a", Name: "Tecnovix Instagram", Family: domain.FamilyInstagram},
	}

	for i := range targets {
		targets[i].URL = baseURL + reportPathPrefix + targets[i].ID
	}

	return targets
}

// ConfiguredTargets monta os relatórios a partir de MLABS_REPORT_NAMES. O código
// segue a posição na lista (A, B, C...) e pode ser informado como "código=nome".
func ConfiguredTargets(names []string) []domain.ReportTarget {
	targets := make([]domain.ReportTarget, 0, len(names))

	for _, entry := range names {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		code := positionalCode(len(targets))
		name := entry
		if before, after, ok := strings.Cut(entry, "="); ok && strings.TrimSpace(before) != "" && strings.TrimSpace(after) != "" {
			code = strings.TrimSpace(before)
			name = strings.TrimSpace(after)
		}

		targets = append(targets, domain.ReportTarget{
			Code:   code,
			Name:   name,
			Family: domain.FamilyFromName(name),
		})
	}

	return targets
}

// positionalCode converte 0, 1, ... 25, 26 em A, B, ... Z, AA
func positionalCode(i int) string {
	code := ""
	for i++; i > 0; i = (i - 1) / 26 {
		code = string(rune('A'+(i-1)%26)) + code
	}
	return code
}

// TargetNames retorna os nomes usados para filtrar a listagem
func TargetNames(targets []domain.ReportTarget) []string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}
	return names
}
