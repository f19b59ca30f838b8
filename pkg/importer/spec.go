package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/n0needt0/bytefreezer-awx-import/pkg/awx"
)

// JobTemplateSpec is one job template definition read from a YAML file. Fields
// that have non-zero defaults are pointers so an explicit false/0 in the file
// survives normalization.
type JobTemplateSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	JobType     string `yaml:"job_type"`
	Inventory   string `yaml:"inventory"`
	Project     string `yaml:"project"`
	Playbook    string `yaml:"playbook"`
	Credential  string `yaml:"credential"`

	Forks     *int   `yaml:"forks"`
	Limit     string `yaml:"limit"`
	Verbosity *int   `yaml:"verbosity"`
	ExtraVars string `yaml:"extra_vars"`
	JobTags   string `yaml:"job_tags"`
	SkipTags  string `yaml:"skip_tags"`
	Timeout   int    `yaml:"timeout"`

	UseFactCache *bool `yaml:"use_fact_cache"`

	AskScmBranchOnLaunch bool `yaml:"ask_scm_branch_on_launch"`
	AskVariablesOnLaunch bool `yaml:"ask_variables_on_launch"`
	AskLimitOnLaunch     bool `yaml:"ask_limit_on_launch"`
	AskTagsOnLaunch      bool `yaml:"ask_tags_on_launch"`
	AskSkipTagsOnLaunch  bool `yaml:"ask_skip_tags_on_launch"`
	AskVerbosityOnLaunch bool `yaml:"ask_verbosity_on_launch"`

	SurveyEnabled     bool  `yaml:"survey_enabled"`
	BecomeEnabled     *bool `yaml:"become_enabled"`
	DiffMode          bool  `yaml:"diff_mode"`
	AllowSimultaneous bool  `yaml:"allow_simultaneous"`

	SurveySpec *SurveySpec `yaml:"survey_spec"`
}

// SurveySpec is the launch-time question set attached to a job template. It is
// shipped to awx as a JSON document on a separate modify call.
type SurveySpec struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description" json:"description"`
	Spec        []SurveyQuestion `yaml:"spec" json:"spec"`
}

type SurveyQuestion struct {
	QuestionName        string      `yaml:"question_name" json:"question_name"`
	QuestionDescription string      `yaml:"question_description" json:"question_description"`
	Variable            string      `yaml:"variable" json:"variable"`
	Type                string      `yaml:"type" json:"type"`
	Required            bool        `yaml:"required" json:"required"`
	Default             interface{} `yaml:"default,omitempty" json:"default,omitempty"`
	Choices             interface{} `yaml:"choices,omitempty" json:"choices,omitempty"`
	Min                 *int        `yaml:"min,omitempty" json:"min,omitempty"`
	Max                 *int        `yaml:"max,omitempty" json:"max,omitempty"`
}

// WorkflowSpec is read only to report the workflow's declared name; the tool
// never submits workflow templates to the server.
type WorkflowSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// InventoryFile mirrors the structure of an Ansible YAML inventory closely
// enough to confirm it parses; hosts are never pushed to the server.
type InventoryFile struct {
	All InventoryGroup `yaml:"all"`
}

type InventoryGroup struct {
	Hosts    map[string]map[string]interface{} `yaml:"hosts"`
	Children map[string]InventoryGroup         `yaml:"children"`
	Vars     map[string]interface{}            `yaml:"vars"`
}

// HostCount returns the number of hosts declared anywhere in the group tree.
func (g InventoryGroup) HostCount() int {
	n := len(g.Hosts)
	for _, child := range g.Children {
		n += child.HostCount()
	}
	return n
}

// LoadJobTemplate reads and parses a job template file and normalizes its
// defaults. A template without a name is rejected.
func LoadJobTemplate(path string) (*JobTemplateSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	var spec JobTemplateSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse template YAML %s: %w", path, err)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("template file %s has no name", path)
	}
	spec.normalize()
	return &spec, nil
}

// LoadWorkflow reads a workflow template file. The contents beyond the name
// are not acted on.
func LoadWorkflow(path string) (*WorkflowSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file %s: %w", path, err)
	}
	var spec WorkflowSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse workflow YAML %s: %w", path, err)
	}
	if spec.Name == "" {
		spec.Name = "Unknown"
	}
	return &spec, nil
}

// LoadInventory parses an inventory file to confirm structural validity.
func LoadInventory(path string) (*InventoryFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file %s: %w", path, err)
	}
	var inv InventoryFile
	if err := yaml.Unmarshal(b, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse inventory YAML %s: %w", path, err)
	}
	return &inv, nil
}

// normalize applies field defaults once at parse time so every later consumer
// sees a fully-populated spec.
func (s *JobTemplateSpec) normalize() {
	if s.JobType == "" {
		s.JobType = "run"
	}
	if s.Forks == nil {
		s.Forks = intPtr(5)
	}
	if s.Verbosity == nil {
		s.Verbosity = intPtr(1)
	}
	if s.UseFactCache == nil {
		s.UseFactCache = boolPtr(true)
	}
	if s.BecomeEnabled == nil {
		s.BecomeEnabled = boolPtr(true)
	}
}

// CreateOptions maps every recognized field to the awx client's flag names, in
// a fixed order matching the client's argument grammar field-for-field.
func (s *JobTemplateSpec) CreateOptions() []awx.Option {
	return []awx.Option{
		{Key: "description", Value: s.Description},
		{Key: "job_type", Value: s.JobType},
		{Key: "inventory", Value: s.Inventory},
		{Key: "project", Value: s.Project},
		{Key: "playbook", Value: s.Playbook},
		{Key: "credential", Value: s.Credential},
		{Key: "forks", Value: strconv.Itoa(*s.Forks)},
		{Key: "limit", Value: s.Limit},
		{Key: "verbosity", Value: strconv.Itoa(*s.Verbosity)},
		{Key: "extra_vars", Value: s.ExtraVars},
		{Key: "job_tags", Value: s.JobTags},
		{Key: "skip_tags", Value: s.SkipTags},
		{Key: "timeout", Value: strconv.Itoa(s.Timeout)},
		{Key: "use_fact_cache", Value: formatBool(*s.UseFactCache)},
		{Key: "ask_scm_branch_on_launch", Value: formatBool(s.AskScmBranchOnLaunch)},
		{Key: "ask_variables_on_launch", Value: formatBool(s.AskVariablesOnLaunch)},
		{Key: "ask_limit_on_launch", Value: formatBool(s.AskLimitOnLaunch)},
		{Key: "ask_tags_on_launch", Value: formatBool(s.AskTagsOnLaunch)},
		{Key: "ask_skip_tags_on_launch", Value: formatBool(s.AskSkipTagsOnLaunch)},
		{Key: "ask_verbosity_on_launch", Value: formatBool(s.AskVerbosityOnLaunch)},
		{Key: "survey_enabled", Value: formatBool(s.SurveyEnabled)},
		{Key: "become_enabled", Value: formatBool(*s.BecomeEnabled)},
		{Key: "diff_mode", Value: formatBool(s.DiffMode)},
		{Key: "allow_simultaneous", Value: formatBool(s.AllowSimultaneous)},
	}
}

// SurveyJSON serializes the survey spec to the JSON document awx expects on
// the --survey_spec option. Returns "" when there is no survey.
func (s *JobTemplateSpec) SurveyJSON() (string, error) {
	if s.SurveySpec == nil {
		return "", nil
	}
	b, err := json.Marshal(s.SurveySpec)
	if err != nil {
		return "", fmt.Errorf("failed to serialize survey spec for %s: %w", s.Name, err)
	}
	return string(b), nil
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
