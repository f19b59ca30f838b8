package cmds

import (
	"context"
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

type PlanCommand struct{ *gcmds.CommandDescription }

type PlanSettings struct {
	Dir string `glazed.parameter:"dir"`
}

func NewPlanCommand() (*PlanCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"plan",
		gcmds.WithShort("Show the ordered import plan without contacting AWX"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("dir", parameters.ParameterTypeString, parameters.WithDefault("awx"), parameters.WithHelp("Directory holding the resource YAML files"), parameters.WithShortFlag("d")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	return &PlanCommand{cd}, nil
}

// GlazeCommand: one row per plan step, in execution order.
func (c *PlanCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &PlanSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}

	for i, step := range importer.Plan() {
		resource := ""
		calls := 1
		switch step.Kind {
		case importer.StepProject:
			resource = importer.ProjectName
		case importer.StepCredential:
			resource = importer.CredentialName
		case importer.StepInventory:
			resource = importer.InventoryName
		case importer.StepJobTemplate:
			if spec, err := importer.LoadJobTemplate(filepath.Join(s.Dir, step.File)); err == nil {
				resource = spec.Name
				if spec.SurveySpec != nil {
					calls = 2
				}
			}
		case importer.StepWorkflow:
			calls = 0
			if spec, err := importer.LoadWorkflow(filepath.Join(s.Dir, step.File)); err == nil {
				resource = spec.Name
			}
		}

		row := types.NewRow(
			types.MRP("step", i+1),
			types.MRP("kind", string(step.Kind)),
			types.MRP("resource", resource),
			types.MRP("file", step.File),
			types.MRP("awx_calls", calls),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

var _ gcmds.GlazeCommand = &PlanCommand{}
