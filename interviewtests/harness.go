package interviewtests

import (
	"fmt"
	"io"
	"net/http"

	"github.com/acat-interview/interview-contract-tests/client"
	"github.com/acat-interview/interview-contract-tests/config"
	"github.com/acat-interview/interview-contract-tests/framework"
	"github.com/acat-interview/interview-contract-tests/servicedef"
)

// TestHarness holds what every test in a run shares: the configuration and a client for
// the service under test. Nothing in it changes once the run starts.
type TestHarness struct {
	cfg    *config.Config
	client *client.Client
}

// NewTestHarness creates a TestHarness and waits for the service to be ready, writing
// progress to statusOutput. It fails if the service does not answer its readiness probe
// within the configured startup timeout.
func NewTestHarness(cfg *config.Config, debugLogger framework.Logger, statusOutput io.Writer) (*TestHarness, error) {
	c := client.NewClient(cfg, debugLogger)
	probeClient := &http.Client{Timeout: cfg.RequestTimeout()}
	err := framework.AwaitService(probeClient, cfg.URL(servicedef.EndpointPing), cfg.StartupTimeout(), statusOutput)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("service at %s is not responding: %w", cfg.BaseURL(), err)
	}
	return &TestHarness{cfg: cfg, client: c}, nil
}

func (h *TestHarness) Config() *config.Config {
	return h.cfg
}

func (h *TestHarness) Close() {
	h.client.Close()
}
