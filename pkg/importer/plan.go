package importer

// StepKind enumerates the resource kinds the importer knows how to register.
type StepKind string

const (
	StepProject     StepKind = "project"
	StepCredential  StepKind = "credential"
	StepInventory   StepKind = "inventory"
	StepJobTemplate StepKind = "job_template"
	StepWorkflow    StepKind = "workflow"
)

// Step is one entry of the import plan: a kind plus the resource file it reads,
// if any. Project, credential and inventory are defined by fixed metadata and
// carry no file.
type Step struct {
	Kind StepKind
	File string
}

// Plan returns the fixed, ordered import sequence. The ordering is a design
// choice (the project must exist before templates reference it); steps do not
// depend on each other's results and failures never short-circuit the run.
func Plan() []Step {
	return []Step{
		{Kind: StepProject},
		{Kind: StepCredential},
		{Kind: StepInventory},
		{Kind: StepJobTemplate, File: "bytefreezer_proxy_install.yml"},
		{Kind: StepJobTemplate, File: "bytefreezer_proxy_config_update.yml"},
		{Kind: StepJobTemplate, File: "bytefreezer_proxy_service_manage.yml"},
		{Kind: StepJobTemplate, File: "bytefreezer_proxy_uninstall.yml"},
		{Kind: StepWorkflow, File: "workflow_template_full_deployment.yml"},
	}
}

// TemplateFiles returns the job template files of the plan, in order.
func TemplateFiles() []string {
	var files []string
	for _, step := range Plan() {
		if step.Kind == StepJobTemplate {
			files = append(files, step.File)
		}
	}
	return files
}
