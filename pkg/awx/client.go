package awx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Client invokes the external `awx` command-line tool. Every remote-affecting
// operation funnels through Run; the client never talks to the AWX API directly.
type Client struct {
	Host     string
	Username string
	Password string

	// binary overrides the executable name, used by tests.
	binary string
}

// Option is one `--key value` pair on the awx command line. Options are kept as
// an ordered list so the generated argument vector is reproducible.
type Option struct {
	Key   string
	Value string
}

// Request describes a single awx invocation: a resource type, an action, an
// optional --name and the remaining options in order.
type Request struct {
	Resource string
	Action   string
	Name     string
	Options  []Option
}

// Result is the outcome of one awx invocation. Output is treated as opaque
// text; OK reflects the process exit status only.
type Result struct {
	OK     bool
	Stdout string
	Stderr string
}

func NewClient(host, username, password string) *Client {
	return &Client{Host: host, Username: username, Password: password, binary: "awx"}
}

// Probe checks that the awx client is installed and runnable. A failure here
// is fatal for the whole run; the caller is expected to exit non-zero.
func (c *Client) Probe(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.binary, "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("awx client not found, install it with 'pip install awxkit': %w", err)
	}
	return nil
}

// Run executes one awx command and classifies the outcome. Non-zero exit is
// not an error at this level; it is a failed Result with captured stderr.
func (c *Client) Run(ctx context.Context, req Request) *Result {
	args := c.buildArgs(req)

	log.Debug().
		Str("resource", req.Resource).
		Str("action", req.Action).
		Str("name", req.Name).
		Str("command", c.redactedCommandLine(args)).
		Msg("awx: invoking client")

	cmd := exec.CommandContext(ctx, c.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		OK:     err == nil,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		log.Debug().
			Err(err).
			Str("resource", req.Resource).
			Str("action", req.Action).
			Str("stderr", res.Stderr).
			Msg("awx: client exited non-zero")
	}
	return res
}

// CommandLine renders the full command for operator preview (dry-run), with
// the password redacted.
func (c *Client) CommandLine(req Request) string {
	return c.redactedCommandLine(c.buildArgs(req))
}

func (c *Client) buildArgs(req Request) []string {
	args := []string{
		"--conf.host", c.Host,
		"--conf.username", c.Username,
		"--conf.password", c.Password,
		req.Resource,
		req.Action,
	}
	if req.Name != "" {
		args = append(args, "--name", req.Name)
	}
	for _, opt := range req.Options {
		args = append(args, "--"+opt.Key, opt.Value)
	}
	return args
}

func (c *Client) redactedCommandLine(args []string) string {
	redacted := make([]string, len(args))
	copy(redacted, args)
	for i := 0; i < len(redacted)-1; i++ {
		if redacted[i] == "--conf.password" {
			redacted[i+1] = "****"
		}
	}
	return c.binary + " " + strings.Join(redacted, " ")
}
