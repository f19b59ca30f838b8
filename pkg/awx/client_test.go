package awx

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient("https://awx.example.net", "admin", "hunter2")
}

func TestBuildArgs(t *testing.T) {
	c := testClient()

	args := c.buildArgs(Request{
		Resource: "project",
		Action:   "create",
		Name:     "ByteFreezer Proxy",
		Options: []Option{
			{Key: "scm_type", Value: "git"},
			{Key: "scm_branch", Value: "main"},
		},
	})

	assert.Equal(t, []string{
		"--conf.host", "https://awx.example.net",
		"--conf.username", "admin",
		"--conf.password", "hunter2",
		"project", "create",
		"--name", "ByteFreezer Proxy",
		"--scm_type", "git",
		"--scm_branch", "main",
	}, args)
}

func TestBuildArgsNoName(t *testing.T) {
	c := testClient()

	args := c.buildArgs(Request{Resource: "config", Action: "list"})
	assert.NotContains(t, args, "--name")
	assert.Equal(t, "list", args[len(args)-1])
}

func TestBuildArgsOptionOrderIsStable(t *testing.T) {
	c := testClient()
	opts := []Option{
		{Key: "forks", Value: "5"},
		{Key: "verbosity", Value: "1"},
		{Key: "timeout", Value: "0"},
	}

	first := c.buildArgs(Request{Resource: "job_template", Action: "create", Options: opts})
	second := c.buildArgs(Request{Resource: "job_template", Action: "create", Options: opts})
	assert.Equal(t, first, second)
}

func TestCommandLineRedactsPassword(t *testing.T) {
	c := testClient()

	line := c.CommandLine(Request{Resource: "project", Action: "create", Name: "p"})
	assert.NotContains(t, line, "hunter2")
	assert.Contains(t, line, "--conf.password ****")
	assert.True(t, strings.HasPrefix(line, "awx "))
}

func TestProbeMissingBinary(t *testing.T) {
	c := testClient()
	c.binary = "definitely-not-an-awx-binary"

	err := c.Probe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip install awxkit")
}

func TestRunClassifiesExitStatus(t *testing.T) {
	c := testClient()

	c.binary = "true"
	res := c.Run(context.Background(), Request{Resource: "project", Action: "create"})
	assert.True(t, res.OK)

	c.binary = "false"
	res = c.Run(context.Background(), Request{Resource: "project", Action: "create"})
	assert.False(t, res.OK)
}
