package awxlayer

import (
	"fmt"

	glzcms "github.com/go-go-golems/glazed/pkg/cmds"
	glzlayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
)

const AWXLayerSlug = "awx"

type AWXSettings struct {
	Host         string `glazed.parameter:"awx-host"`
	Username     string `glazed.parameter:"awx-username"`
	Password     string `glazed.parameter:"awx-password"`
	Organization string `glazed.parameter:"awx-organization"`
}

// NewAWXLayer defines a reusable parameter layer for AWX connection settings.
func NewAWXLayer() (glzlayers.ParameterLayer, error) {
	return glzlayers.NewParameterLayer(
		AWXLayerSlug,
		"AWX connection settings",
		glzlayers.WithParameterDefinitions(
			parameters.NewParameterDefinition(
				"awx-host",
				parameters.ParameterTypeString,
				parameters.WithHelp("AWX server URL"),
				parameters.WithRequired(true),
			),
			parameters.NewParameterDefinition(
				"awx-username",
				parameters.ParameterTypeString,
				parameters.WithHelp("AWX username"),
				parameters.WithRequired(true),
			),
			parameters.NewParameterDefinition(
				"awx-password",
				parameters.ParameterTypeString,
				parameters.WithHelp("AWX password"),
				parameters.WithRequired(true),
			),
			parameters.NewParameterDefinition(
				"awx-organization",
				parameters.ParameterTypeString,
				parameters.WithHelp("AWX organization"),
				parameters.WithDefault("Default"),
			),
		),
	)
}

// AddAWXLayerToCommand attaches the layer to a Glazed command description.
func AddAWXLayerToCommand(c glzcms.Command) (glzcms.Command, error) {
	l, err := NewAWXLayer()
	if err != nil {
		return nil, err
	}
	c.Description().Layers.Set(AWXLayerSlug, l)
	return c, nil
}

// GetAWXSettings returns parsed AWX settings from the ParsedLayers.
func GetAWXSettings(parsed *glzlayers.ParsedLayers) (*AWXSettings, error) {
	var s AWXSettings
	if err := parsed.InitializeStruct(AWXLayerSlug, &s); err != nil {
		return nil, fmt.Errorf("failed to parse awx settings: %w", err)
	}
	return &s, nil
}
