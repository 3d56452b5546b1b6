//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIEndpoint string
	Token       string
	Account     string
	BinaryPath  string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("YBCLOUD_API"),
		Token:       os.Getenv("YBCLOUD_TOKEN"),
		Account:     os.Getenv("YBCLOUD_ACCOUNT"),
		BinaryPath:  getBinaryPath(),
		Verbose:     os.Getenv("YBCLOUD_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the ybcloud binary
func getBinaryPath() string {
	if path := os.Getenv("YBCLOUD_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../ybcloud", "./ybcloud", "../ybcloud"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "ybcloud"
}

// SkipIfMissingConfig skips the test when no endpoint is configured
func (c *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if c.APIEndpoint == "" || c.Token == "" || c.Account == "" {
		t.Skip("YBCLOUD_API, YBCLOUD_TOKEN and YBCLOUD_ACCOUNT must be set")
	}
}

// CommandRunner runs the ybcloud binary with an isolated config file
type CommandRunner struct {
	config     *TestConfig
	t          *testing.T
	configFile string
}

// NewCommandRunner creates a runner whose config lives in a temp dir
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		t:          t,
		configFile: t.TempDir() + "/config.yml",
	}
}

// Run executes the binary and returns stdout and stderr
func (r *CommandRunner) Run(args ...string) (string, string, error) {
	r.t.Helper()

	fullArgs := append([]string{"--config", r.configFile}, args...)
	if r.config.Verbose {
		fullArgs = append(fullArgs, "--verbose")
	}

	cmd := exec.Command(r.config.BinaryPath, fullArgs...) // #nosec G204
	cmd.Env = append(os.Environ(),
		"YBCLOUD_API="+r.config.APIEndpoint,
		"YBCLOUD_TOKEN="+r.config.Token,
		"YBCLOUD_ACCOUNT="+r.config.Account,
	)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	if r.config.Verbose {
		r.t.Logf("ybcloud %v took %s", args, time.Since(start))
	}

	return stdout.String(), stderr.String(), err
}
