package cmds

import (
	"context"
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

type RunCommand struct{ *gcmds.CommandDescription }

type RunSettings struct {
	Dir     string `glazed.parameter:"dir"`
	DryRun  bool   `glazed.parameter:"dry-run"`
	NoColor bool   `glazed.parameter:"no-color"`
}

func NewRunCommand() (*RunCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}

	cd := gcmds.NewCommandDescription(
		"run",
		gcmds.WithShort("Import the full ByteFreezer Proxy resource set into AWX"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("dir", parameters.ParameterTypeString, parameters.WithDefault(""), parameters.WithHelp("Directory holding the resource YAML files (default awx)"), parameters.WithShortFlag("d")),
			parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Preview awx invocations without executing them")),
			parameters.NewParameterDefinition("no-color", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Disable colored status output")),
		),
		gcmds.WithLayersList(layer),
	)
	_, err = awxlayer.AddAWXLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &RunCommand{cd}, nil
}

func (c *RunCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &RunSettings{}
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

	imp := importer.New(client, importer.Options{
		BaseDir:      s.Dir,
		Organization: as.Organization,
		DryRun:       s.DryRun,
	})

	// Per-step failures are reported inline and never fail the run; only a
	// missing awx client (above) produces a non-zero exit.
	imp.Run(ctx, as.Host)
	return nil
}

var _ gcmds.BareCommand = &RunCommand{}
