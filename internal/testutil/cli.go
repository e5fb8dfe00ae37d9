// Package testutil runs the built epoch binary for integration tests.
package testutil

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	// binaryPath caches the built epoch binary across tests.
	binaryPath string
	buildMu    sync.Mutex
	buildErr   error
)

// CLI runs the epoch binary in an isolated environment: a private
// HOME, no EPOCH_* variables unless set via Env, and an optional
// dedicated config file.
type CLI struct {
	t *testing.T

	// Home is the isolated home directory.
	Home string

	// ConfigPath, when set, is passed via --config.
	ConfigPath string

	// Env holds extra KEY=VALUE pairs for the child process.
	Env []string
}

// NewCLI builds the binary once and returns an isolated runner.
func NewCLI(t *testing.T) *CLI {
	t.Helper()
	BuildCLI(t)
	return &CLI{
		t:    t,
		Home: t.TempDir(),
	}
}

// CLIResult is the parsed outcome of one binary invocation.
type CLIResult struct {
	OK       bool
	Data     map[string]interface{}
	Error    *CLIError
	Warnings []CLIWarning
	Meta     *CLIMeta
	RawJSON  string
	ExitCode int
}

// CLIError is the structured error payload.
type CLIError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Suggestion string                 `json:"suggestion,omitempty"`
}

// CLIWarning is a non-fatal notice attached to a response.
type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CLIMeta carries response metadata.
type CLIMeta struct {
	Count int `json:"count,omitempty"`
}

// BuildCLI builds the epoch binary and returns its path. RunJSON and
// RunPlain call it implicitly.
func BuildCLI(t *testing.T) string {
	t.Helper()

	buildMu.Lock()
	defer buildMu.Unlock()

	if binaryPath != "" {
		if _, err := os.Stat(binaryPath); err == nil {
			return binaryPath
		}
		// Binary disappeared (temp cleanup on some runners).
		binaryPath = ""
		buildErr = nil
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		buildErr = err
	} else {
		tmpDir, err := os.MkdirTemp("", "epoch-cli-bin-*")
		if err != nil {
			buildErr = err
		} else {
			binName := "epoch"
			if runtime.GOOS == "windows" {
				binName = "epoch.exe"
			}

			binaryPath = filepath.Join(tmpDir, binName)
			cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/epoch")
			cmd.Dir = projectRoot
			output, err := cmd.CombinedOutput()
			if err != nil {
				buildErr = &BuildError{Output: string(output), Err: err}
				binaryPath = ""
			}
		}
	}

	if buildErr != nil {
		t.Fatalf("failed to build CLI: %v", buildErr)
	}

	return binaryPath
}

// BuildError reports a failed binary build.
type BuildError struct {
	Output string
	Err    error
}

func (e *BuildError) Error() string {
	return e.Err.Error() + "\n" + e.Output
}

// findProjectRoot walks up the directory tree to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func (c *CLI) command(args ...string) *exec.Cmd {
	binary := BuildCLI(c.t)

	cmdArgs := args
	if c.ConfigPath != "" {
		cmdArgs = append([]string{"--config", c.ConfigPath}, cmdArgs...)
	}

	cmd := exec.Command(binary, cmdArgs...)
	cmd.Env = c.environ()
	return cmd
}

// environ is the parent environment with EPOCH_* scrubbed, HOME and
// XDG_CONFIG_HOME redirected, and c.Env appended.
func (c *CLI) environ() []string {
	env := make([]string, 0, len(os.Environ())+len(c.Env)+2)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "EPOCH_") ||
			strings.HasPrefix(kv, "HOME=") ||
			strings.HasPrefix(kv, "XDG_CONFIG_HOME=") {
			continue
		}
		env = append(env, kv)
	}
	env = append(env, "HOME="+c.Home, "XDG_CONFIG_HOME="+filepath.Join(c.Home, ".config"))
	return append(env, c.Env...)
}

// RunJSON executes the binary with --json and parses the envelope.
func (c *CLI) RunJSON(args ...string) *CLIResult {
	c.t.Helper()

	cmd := c.command(append([]string{"--json"}, args...)...)
	output, err := cmd.CombinedOutput()

	result := &CLIResult{
		RawJSON: string(output),
	}
	result.ExitCode = exitCode(err)

	var resp struct {
		OK       bool                   `json:"ok"`
		Data     map[string]interface{} `json:"data,omitempty"`
		Error    *CLIError              `json:"error,omitempty"`
		Warnings []CLIWarning           `json:"warnings,omitempty"`
		Meta     *CLIMeta               `json:"meta,omitempty"`
	}

	if err := json.Unmarshal(output, &resp); err != nil {
		result.OK = false
		result.Error = &CLIError{
			Code:    "PARSE_ERROR",
			Message: "failed to parse JSON output: " + err.Error(),
			Details: map[string]interface{}{"raw": string(output)},
		}
		return result
	}

	result.OK = resp.OK
	result.Data = resp.Data
	result.Error = resp.Error
	result.Warnings = resp.Warnings
	result.Meta = resp.Meta

	return result
}

// RunPlain executes the binary without --json and returns combined
// output and exit code.
func (c *CLI) RunPlain(args ...string) (string, int) {
	c.t.Helper()

	cmd := c.command(args...)
	output, err := cmd.CombinedOutput()
	return string(output), exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// MustSucceed fails the test if the command did not succeed.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK {
		errMsg := "unknown error"
		if r.Error != nil {
			errMsg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("expected command to succeed, got error: %s\nRaw output: %s", errMsg, r.RawJSON)
	}
	return r
}

// MustFail fails the test unless the command failed with the expected
// code.
func (r *CLIResult) MustFail(t *testing.T, expectedCode string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected command to fail with code %s, but it succeeded\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error == nil {
		t.Fatalf("expected error with code %s, but error is nil\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error.Code != expectedCode {
		t.Fatalf("expected error code %s, got %s: %s\nRaw output: %s", expectedCode, r.Error.Code, r.Error.Message, r.RawJSON)
	}
	return r
}

// MustFailWithMessage fails the test if the command succeeded, or if
// its error does not mention the expected substring.
func (r *CLIResult) MustFailWithMessage(t *testing.T, msgSubstr string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected command to fail, but it succeeded\nRaw output: %s", r.RawJSON)
	}
	if msgSubstr != "" && r.Error != nil {
		if !strings.Contains(r.Error.Message, msgSubstr) && !strings.Contains(r.Error.Suggestion, msgSubstr) {
			t.Errorf("expected error to contain %q, got: %s (suggestion: %s)", msgSubstr, r.Error.Message, r.Error.Suggestion)
		}
	}
	return r
}

// AssertHasWarning checks that the result carries a warning code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}

// DataString extracts a string from the Data field.
func (r *CLIResult) DataString(key string) string {
	if r.Data == nil {
		return ""
	}
	if s, ok := r.Data[key].(string); ok {
		return s
	}
	return ""
}

// DataNumber extracts a numeric Data field. JSON numbers decode as
// float64; timestamps up to 2^53 survive the round trip.
func (r *CLIResult) DataNumber(key string) (int64, bool) {
	if r.Data == nil {
		return 0, false
	}
	if f, ok := r.Data[key].(float64); ok {
		return int64(f), true
	}
	return 0, false
}
