package cmds

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/n0needt0/bytefreezer-awx-import/pkg/awx"
	"github.com/n0needt0/bytefreezer-awx-import/pkg/awxlayer"
	"github.com/n0needt0/bytefreezer-awx-import/pkg/importer"
	"github.com/n0needt0/bytefreezer-awx-import/pkg/output"
)

type TemplateCommand struct{ *gcmds.CommandDescription }

type TemplateSettings struct {
	File    string `glazed.parameter:"file"`
	DryRun  bool   `glazed.parameter:"dry-run"`
	NoColor bool   `glazed.parameter:"no-color"`
}

func NewTemplateCommand() (*TemplateCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}

	cd := gcmds.NewCommandDescription(
		"template",
		gcmds.WithShort("Import a single job template file into AWX"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("file", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithHelp("Job template YAML file"), parameters.WithShortFlag("f")),
			parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Preview awx invocations without executing them")),
			parameters.NewParameterDefinition("no-color", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Disable colored status output")),
		),
		gcmds.WithLayersList(layer),
	)
	_, err = awxlayer.AddAWXLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &TemplateCommand{cd}, nil
}

func (c *TemplateCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &TemplateSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	as, err := awxlayer.GetAWXSettings(parsed)
	if err != nil {
		return err
	}
	output.InitConsole(s.NoColor)

	client := awx.NewClient(as.Host, as.Username, as.Password)

	ctx2, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := client.Probe(ctx2); err != nil {
		return err
	}

	dir := filepath.Dir(s.File)
	imp := importer.New(client, importer.Options{
		BaseDir:      dir,
		Organization: as.Organization,
		DryRun:       s.DryRun,
	})

	if ok := imp.ImportJobTemplate(ctx, filepath.Base(s.File)); !ok {
		return fmt.Errorf("failed to import job template from %s", s.File)
	}
	return nil
}

var _ gcmds.BareCommand = &TemplateCommand{}
