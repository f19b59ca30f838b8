package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/n0needt0/bytefreezer-awx-import/pkg/awx"
	"github.com/n0needt0/bytefreezer-awx-import/pkg/output"
)

// Fixed metadata for the resources that are not defined by a YAML file.
const (
	ProjectName    = "ByteFreezer Proxy"
	CredentialName = "ByteFreezer Proxy SSH"
	InventoryName  = "ByteFreezer Proxy Servers"

	projectScmURL    = "https://github.com/n0needt0/bytefreezer-proxy.git"
	projectScmBranch = "main"
	projectLocalPath = "ansible"

	credentialInputs = `{"username": "ubuntu", "become_method": "sudo", "become_username": "root"}`

	inventoryFileName = "inventory_import.yml"
)

// Runner abstracts the awx client so the sequencing is testable without a
// subprocess. *awx.Client satisfies it.
type Runner interface {
	Run(ctx context.Context, req awx.Request) *awx.Result
	CommandLine(req awx.Request) string
}

type Options struct {
	// BaseDir is the directory holding the resource YAML files.
	BaseDir string
	// Organization is the AWX organization every resource is created under.
	Organization string
	// DryRun prints the would-be awx invocations without executing them.
	DryRun bool
}

// Importer drives the fixed import sequence and reports per-step outcome to
// the operator. Steps are independent: a failure is printed and the run moves
// on to the next step.
type Importer struct {
	runner Runner
	opts   Options
}

func New(runner Runner, opts Options) *Importer {
	if opts.Organization == "" {
		opts.Organization = "Default"
	}
	// Resolve the resource directory: flag has priority, then config, then
	// the awx/ directory next to the binary's working dir.
	if opts.BaseDir == "" {
		opts.BaseDir = viper.GetString("import.dir")
	}
	if opts.BaseDir == "" {
		opts.BaseDir = "awx"
	}
	return &Importer{runner: runner, opts: opts}
}

// call funnels every remote-affecting operation through the runner, honoring
// dry-run. In dry-run the command is previewed and treated as successful.
func (imp *Importer) call(ctx context.Context, req awx.Request) *awx.Result {
	if imp.opts.DryRun {
		fmt.Println(output.Notef("  dry-run: %s", imp.runner.CommandLine(req)))
		return &awx.Result{OK: true}
	}
	return imp.runner.Run(ctx, req)
}

// ImportProject registers the deployment project with fixed SCM metadata.
func (imp *Importer) ImportProject(ctx context.Context) bool {
	fmt.Println("Importing project...")

	res := imp.call(ctx, awx.Request{
		Resource: "project",
		Action:   "create",
		Name:     ProjectName,
		Options: []awx.Option{
			{Key: "description", Value: "ByteFreezer Proxy Ansible deployment project"},
			{Key: "organization", Value: imp.opts.Organization},
			{Key: "scm_type", Value: "git"},
			{Key: "scm_url", Value: projectScmURL},
			{Key: "scm_branch", Value: projectScmBranch},
			{Key: "scm_clean", Value: "true"},
			{Key: "scm_delete_on_update", Value: "true"},
			{Key: "scm_update_on_launch", Value: "true"},
			{Key: "local_path", Value: projectLocalPath},
		},
	})

	if res.OK {
		fmt.Println(output.OK("Project imported successfully"))
	} else {
		fmt.Println(output.Fail("Failed to import project: %s", output.ShortError(res.Stderr)))
	}
	return res.OK
}

// ImportCredential creates the machine-credential placeholder. No secret
// material is supplied; the SSH private key is added out-of-band.
func (imp *Importer) ImportCredential(ctx context.Context) bool {
	fmt.Println("Creating credential template (requires manual SSH key setup)...")

	res := imp.call(ctx, awx.Request{
		Resource: "credential",
		Action:   "create",
		Name:     CredentialName,
		Options: []awx.Option{
			{Key: "description", Value: "SSH credential for ByteFreezer Proxy servers"},
			{Key: "organization", Value: imp.opts.Organization},
			{Key: "credential_type", Value: "Machine"},
			{Key: "inputs", Value: credentialInputs},
		},
	})

	if res.OK {
		fmt.Println(output.OK("Credential template created (add SSH private key manually in AWX UI)"))
	} else {
		fmt.Println(output.Fail("Failed to create credential template: %s", output.ShortError(res.Stderr)))
	}
	return res.OK
}

// ImportInventory creates the inventory skeleton and, when the local inventory
// file exists, parses it to confirm structural validity. Hosts are never
// pushed; they must be added manually in the AWX UI.
func (imp *Importer) ImportInventory(ctx context.Context) bool {
	fmt.Println("Importing inventory...")

	res := imp.call(ctx, awx.Request{
		Resource: "inventory",
		Action:   "create",
		Name:     InventoryName,
		Options: []awx.Option{
			{Key: "description", Value: "Physical servers for ByteFreezer Proxy deployment"},
			{Key: "organization", Value: imp.opts.Organization},
		},
	})

	if !res.OK {
		fmt.Println(output.Fail("Failed to create inventory: %s", output.ShortError(res.Stderr)))
		return false
	}
	fmt.Println(output.OK("Inventory created"))

	path := filepath.Join(imp.opts.BaseDir, inventoryFileName)
	if _, err := os.Stat(path); err != nil {
		fmt.Println(output.Fail("Inventory import file not found: %s", path))
		return true
	}
	inv, err := LoadInventory(path)
	if err != nil {
		fmt.Println(output.Fail("Failed to parse inventory file: %v", err))
		return true
	}
	log.Debug().Str("file", path).Int("hosts", inv.All.HostCount()).Msg("import: inventory structure loaded")
	fmt.Println(output.OK("Inventory structure loaded (configure hosts manually in AWX UI)"))
	return true
}

// ImportJobTemplate reads one job template file and registers it. When the
// template carries a survey spec, a second modify call attaches it; a failed
// survey attach leaves the created template intact and is reported as a
// partial success.
func (imp *Importer) ImportJobTemplate(ctx context.Context, file string) bool {
	path := filepath.Join(imp.opts.BaseDir, file)
	if _, err := os.Stat(path); err != nil {
		fmt.Println(output.Fail("Template file not found: %s", file))
		return false
	}

	spec, err := LoadJobTemplate(path)
	if err != nil {
		fmt.Println(output.Fail("Failed to load template %s: %v", file, err))
		return false
	}
	fmt.Printf("Importing job template: %s\n", spec.Name)

	surveyJSON, err := spec.SurveyJSON()
	if err != nil {
		fmt.Println(output.Fail("Failed to prepare survey for %s: %v", spec.Name, err))
		return false
	}

	log.Debug().
		Str("template", spec.Name).
		Str("file", file).
		Bool("has_survey", surveyJSON != "").
		Msg("import: job template loaded")

	res := imp.call(ctx, awx.Request{
		Resource: "job_template",
		Action:   "create",
		Name:     spec.Name,
		Options:  spec.CreateOptions(),
	})
	if !res.OK {
		fmt.Println(output.Fail("Failed to import job template: %s: %s", spec.Name, output.ShortError(res.Stderr)))
		return false
	}

	if surveyJSON == "" {
		fmt.Println(output.OK("Job template imported: %s", spec.Name))
		return true
	}

	surveyRes := imp.call(ctx, awx.Request{
		Resource: "job_template",
		Action:   "modify",
		Name:     spec.Name,
		Options: []awx.Option{
			{Key: "survey_spec", Value: surveyJSON},
		},
	})
	if surveyRes.OK {
		fmt.Println(output.OK("Job template with survey imported: %s", spec.Name))
	} else {
		fmt.Println(output.OK("Job template imported (survey failed): %s", spec.Name))
	}
	return true
}

// ImportAllJobTemplates imports the fixed template list, continuing past
// individual failures.
func (imp *Importer) ImportAllJobTemplates(ctx context.Context) {
	for _, file := range TemplateFiles() {
		imp.ImportJobTemplate(ctx, file)
	}
}

// ImportWorkflowTemplate reads the workflow file only to report its declared
// name. Workflow templates are never submitted; they require manual setup.
func (imp *Importer) ImportWorkflowTemplate(ctx context.Context, file string) bool {
	path := filepath.Join(imp.opts.BaseDir, file)
	if _, err := os.Stat(path); err != nil {
		fmt.Println(output.Fail("Workflow file not found: %s", file))
		return false
	}

	spec, err := LoadWorkflow(path)
	if err != nil {
		fmt.Println(output.Fail("Failed to load workflow %s: %v", file, err))
		return false
	}
	fmt.Printf("Importing workflow template: %s\n", spec.Name)
	fmt.Println(output.Warn("Workflow templates require manual setup in AWX UI"))
	fmt.Println(output.Notef("  Template configuration available in: %s", file))
	return true
}

// Run executes the full import plan in fixed order, printing a banner first
// and the manual follow-up checklist after, regardless of the success/failure
// mix observed along the way.
func (imp *Importer) Run(ctx context.Context, host string) {
	fmt.Println(output.Header("Starting AWX import for ByteFreezer Proxy..."))
	fmt.Printf("Server: %s\n", host)
	fmt.Printf("Organization: %s\n", imp.opts.Organization)
	fmt.Println(strings.Repeat("-", 50))

	plan := Plan()
	log.Info().Int("steps", len(plan)).Str("dir", imp.opts.BaseDir).Bool("dry_run", imp.opts.DryRun).Msg("import: start")

	for _, step := range plan {
		switch step.Kind {
		case StepProject:
			imp.ImportProject(ctx)
		case StepCredential:
			imp.ImportCredential(ctx)
		case StepInventory:
			imp.ImportInventory(ctx)
		case StepJobTemplate:
			imp.ImportJobTemplate(ctx, step.File)
		case StepWorkflow:
			imp.ImportWorkflowTemplate(ctx, step.File)
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	fmt.Println(output.Header("Import completed!"))
	fmt.Println()
	fmt.Println("Manual steps required:")
	fmt.Print(output.ListItems([]string{
		fmt.Sprintf("Add SSH private key to '%s' credential", CredentialName),
		fmt.Sprintf("Configure hosts in '%s' inventory", InventoryName),
		"Set up workflow templates manually (see workflow YAML files)",
		"Test job templates with survey forms",
	}))
	log.Info().Msg("import: completed")
}
