package cmds

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/n0needt0/bytefreezer-awx-import/pkg/importer"
)

type ValidateCommand struct{ *gcmds.CommandDescription }

type ValidateSettings struct {
	Dir string `glazed.parameter:"dir"`
}

func NewValidateCommand() (*ValidateCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"validate",
		gcmds.WithShort("Check every resource file of the import plan without contacting AWX"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("dir", parameters.ParameterTypeString, parameters.WithDefault("awx"), parameters.WithHelp("Directory holding the resource YAML files"), parameters.WithShortFlag("d")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	return &ValidateCommand{cd}, nil
}

// RunIntoGlazeProcessor emits one finding row per problem found in the plan's
// resource files: missing files, unparseable YAML, missing names, survey
// questions without a variable. A clean plan emits only "ok" rows.
func (c *ValidateCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &ValidateSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}

	addRow := func(file, status, detail string) error {
		return gp.AddRow(ctx, types.NewRow(
			types.MRP("file", file),
			types.MRP("status", status),
			types.MRP("detail", detail),
		))
	}

	for _, file := range importer.TemplateFiles() {
		path := filepath.Join(s.Dir, file)
		if _, err := os.Stat(path); err != nil {
			if err := addRow(file, "missing", "template file not found"); err != nil {
				return err
			}
			continue
		}
		spec, err := importer.LoadJobTemplate(path)
		if err != nil {
			if err := addRow(file, "invalid", err.Error()); err != nil {
				return err
			}
			continue
		}

		ok := true
		if spec.SurveySpec != nil {
			for i, q := range spec.SurveySpec.Spec {
				if q.Variable == "" {
					ok = false
					if err := addRow(file, "invalid", fmt.Sprintf("survey question %d has no variable", i+1)); err != nil {
						return err
					}
				}
				if q.Type == "" {
					ok = false
					if err := addRow(file, "invalid", fmt.Sprintf("survey question %d has no type", i+1)); err != nil {
						return err
					}
				}
			}
		}
		if ok {
			if err := addRow(file, "ok", spec.Name); err != nil {
				return err
			}
		}
	}

	workflowFile := ""
	for _, step := range importer.Plan() {
		if step.Kind == importer.StepWorkflow {
			workflowFile = step.File
		}
	}
	if workflowFile != "" {
		path := filepath.Join(s.Dir, workflowFile)
		if _, err := os.Stat(path); err != nil {
			if err := addRow(workflowFile, "missing", "workflow file not found"); err != nil {
				return err
			}
		} else if spec, err := importer.LoadWorkflow(path); err != nil {
			if err := addRow(workflowFile, "invalid", err.Error()); err != nil {
				return err
			}
		} else {
			if err := addRow(workflowFile, "ok", spec.Name); err != nil {
				return err
			}
		}
	}

	invPath := filepath.Join(s.Dir, "inventory_import.yml")
	if _, err := os.Stat(invPath); err != nil {
		return addRow("inventory_import.yml", "missing", "inventory file not found")
	}
	inv, err := importer.LoadInventory(invPath)
	if err != nil {
		return addRow("inventory_import.yml", "invalid", err.Error())
	}
	return addRow("inventory_import.yml", "ok", fmt.Sprintf("%d host(s) declared", inv.All.HostCount()))
}

var _ gcmds.GlazeCommand = &ValidateCommand{}
