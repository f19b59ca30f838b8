package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJobTemplateDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "minimal.yml", "name: Minimal Template\n")

	spec, err := LoadJobTemplate(path)
	require.NoError(t, err)

	assert.Equal(t, "Minimal Template", spec.Name)
	assert.Equal(t, "run", spec.JobType)
	assert.Equal(t, 5, *spec.Forks)
	assert.Equal(t, 1, *spec.Verbosity)
	assert.Equal(t, 0, spec.Timeout)
	assert.True(t, *spec.UseFactCache)
	assert.True(t, *spec.BecomeEnabled)
	assert.False(t, spec.AskScmBranchOnLaunch)
	assert.False(t, spec.AskVariablesOnLaunch)
	assert.False(t, spec.AskLimitOnLaunch)
	assert.False(t, spec.AskTagsOnLaunch)
	assert.False(t, spec.AskSkipTagsOnLaunch)
	assert.False(t, spec.AskVerbosityOnLaunch)
	assert.False(t, spec.SurveyEnabled)
	assert.False(t, spec.DiffMode)
	assert.False(t, spec.AllowSimultaneous)
	assert.Nil(t, spec.SurveySpec)
}

func TestLoadJobTemplateExplicitValuesSurvive(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "explicit.yml", `
name: Explicit Template
forks: 0
verbosity: 0
use_fact_cache: false
become_enabled: false
`)

	spec, err := LoadJobTemplate(path)
	require.NoError(t, err)

	assert.Equal(t, 0, *spec.Forks)
	assert.Equal(t, 0, *spec.Verbosity)
	assert.False(t, *spec.UseFactCache)
	assert.False(t, *spec.BecomeEnabled)
}

func TestLoadJobTemplateMissingName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "noname.yml", "description: no name here\n")

	_, err := LoadJobTemplate(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestLoadJobTemplateInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.yml", "name: [unclosed\n")

	_, err := LoadJobTemplate(path)
	require.Error(t, err)
}

func TestCreateOptionsCarryDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "minimal.yml", "name: Minimal Template\n")

	spec, err := LoadJobTemplate(path)
	require.NoError(t, err)

	opts := spec.CreateOptions()
	byKey := map[string]string{}
	for _, o := range opts {
		byKey[o.Key] = o.Value
	}

	expected := map[string]string{
		"job_type":                 "run",
		"forks":                    "5",
		"verbosity":                "1",
		"timeout":                  "0",
		"use_fact_cache":           "true",
		"become_enabled":           "true",
		"ask_scm_branch_on_launch": "false",
		"ask_variables_on_launch":  "false",
		"ask_limit_on_launch":      "false",
		"ask_tags_on_launch":       "false",
		"ask_skip_tags_on_launch":  "false",
		"ask_verbosity_on_launch":  "false",
		"survey_enabled":           "false",
		"diff_mode":                "false",
		"allow_simultaneous":       "false",
	}
	for key, want := range expected {
		assert.Equal(t, want, byKey[key], "option %s", key)
	}

	// Every recognized field is mapped, even when empty.
	assert.Len(t, opts, 24)
}

func TestCreateOptionsFieldMapping(t *testing.T) {
	spec := &JobTemplateSpec{
		Name:       "Mapped",
		Inventory:  "inv",
		Project:    "proj",
		Playbook:   "site.yml",
		Credential: "cred",
		JobTags:    "deploy",
		SkipTags:   "slow",
		Timeout:    300,
	}
	spec.normalize()

	var keys []string
	byKey := map[string]string{}
	for _, o := range spec.CreateOptions() {
		keys = append(keys, o.Key)
		byKey[o.Key] = o.Value
	}

	assert.Equal(t, "inv", byKey["inventory"])
	assert.Equal(t, "proj", byKey["project"])
	assert.Equal(t, "site.yml", byKey["playbook"])
	assert.Equal(t, "cred", byKey["credential"])
	assert.Equal(t, "deploy", byKey["job_tags"])
	assert.Equal(t, "slow", byKey["skip_tags"])
	assert.Equal(t, "300", byKey["timeout"])

	// Options come out in the same order on every call.
	var again []string
	for _, o := range spec.CreateOptions() {
		again = append(again, o.Key)
	}
	assert.Equal(t, keys, again)
}

func TestSurveyJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "survey.yml", `
name: Survey Template
survey_spec:
  name: Options
  description: Launch options
  spec:
    - question_name: Version
      variable: version
      type: text
      required: true
      default: latest
`)

	spec, err := LoadJobTemplate(path)
	require.NoError(t, err)
	require.NotNil(t, spec.SurveySpec)

	js, err := spec.SurveyJSON()
	require.NoError(t, err)

	var decoded SurveySpec
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, "Options", decoded.Name)
	require.Len(t, decoded.Spec, 1)
	assert.Equal(t, "version", decoded.Spec[0].Variable)
	assert.Equal(t, "latest", decoded.Spec[0].Default)
}

func TestSurveyJSONEmptyWithoutSurvey(t *testing.T) {
	spec := &JobTemplateSpec{Name: "No Survey"}
	js, err := spec.SurveyJSON()
	require.NoError(t, err)
	assert.Empty(t, js)
}

func TestLoadWorkflowDefaultsName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wf.yml", "description: nameless workflow\n")

	spec, err := LoadWorkflow(path)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", spec.Name)
}

func TestLoadInventoryCountsHosts(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inventory_import.yml", `
all:
  children:
    proxies:
      hosts:
        proxy-01: {}
        proxy-02: {}
`)

	inv, err := LoadInventory(path)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.All.HostCount())
}
