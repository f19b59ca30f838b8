package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanOrder(t *testing.T) {
	plan := Plan()
	require.Len(t, plan, 8)

	var kinds []StepKind
	for _, s := range plan {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []StepKind{
		StepProject,
		StepCredential,
		StepInventory,
		StepJobTemplate,
		StepJobTemplate,
		StepJobTemplate,
		StepJobTemplate,
		StepWorkflow,
	}, kinds)

	// The workflow step is always last; nothing runs after the acknowledgment.
	assert.Equal(t, StepWorkflow, plan[len(plan)-1].Kind)
}

func TestTemplateFiles(t *testing.T) {
	assert.Equal(t, []string{
		"bytefreezer_proxy_install.yml",
		"bytefreezer_proxy_config_update.yml",
		"bytefreezer_proxy_service_manage.yml",
		"bytefreezer_proxy_uninstall.yml",
	}, TemplateFiles())
}
