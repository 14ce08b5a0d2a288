// Package config provides the read-only configuration of a harness run: the base URL of
// the service under test, the path of every logical endpoint, request timeouts, and the
// seeded fixture data the test cases rely on.
//
// A Config is built once by Load and never modified afterward, so it can be shared by
// reference between concurrently running tests.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL        = "http://127.0.0.1:9090"
	DefaultRequestTimeout = time.Second * 10
	DefaultStartupTimeout = time.Second * 10

	envPrefix         = "INTERVIEW_"
	envBaseURL        = envPrefix + "BASE_URL"
	envRequestTimeout = envPrefix + "REQUEST_TIMEOUT"
	envStartupTimeout = envPrefix + "STARTUP_TIMEOUT"
	envEndpointPrefix = envPrefix + "ENDPOINT_"
)

// Fixtures is the data the suite expects to already exist in the service's database.
type Fixtures struct {
	AdminPhone    string `yaml:"admin_phone"`
	AdminPassword string `yaml:"admin_password"`
	AdminID       int    `yaml:"admin_id"`

	UserPhone    string `yaml:"user_phone"`
	UserPassword string `yaml:"user_password"`
	UserEmail    string `yaml:"user_email"`
	UserName     string `yaml:"user_name"`

	CandidateUserID int `yaml:"candidate_user_id"`
	UnknownUserID   int `yaml:"unknown_user_id"`

	PassSlotID   int `yaml:"pass_slot_id"`
	ResultSlotID int `yaml:"result_slot_id"`
	SignupSlotID int `yaml:"signup_slot_id"`

	// RegisterPhone and RegisterEmail must not be registered yet when the suite starts.
	RegisterPhone string `yaml:"register_phone"`
	RegisterEmail string `yaml:"register_email"`
}

// DefaultFixtures matches the dataset the service is seeded with for contract testing.
var DefaultFixtures = Fixtures{
	AdminPhone:      "15229300775",
	AdminPassword:   "123456",
	AdminID:         1,
	UserPhone:       "15229300775",
	UserPassword:    "123456",
	UserEmail:       "2998759818@qq.com",
	UserName:        "张皓翔",
	CandidateUserID: 10,
	UnknownUserID:   100,
	PassSlotID:      6,
	ResultSlotID:    4,
	SignupSlotID:    10,
	RegisterPhone:   "15339300775",
	RegisterEmail:   "2998759818@ww.com",
}

// Config is the configuration of one harness run.
type Config struct {
	baseURL        string
	endpoints      map[servicedef.EndpointName]string
	requestTimeout time.Duration
	startupTimeout time.Duration
	fixtures       Fixtures
}

// LoadOptions controls where Load reads settings from. All fields are optional.
type LoadOptions struct {
	// FilePath is a YAML configuration file.
	FilePath string
	// EnvFile is a dotenv file. If empty, ".env" is loaded when present.
	EnvFile string
	// BaseURL overrides every other source of the base URL.
	BaseURL string
}

type fileConfig struct {
	BaseURL        string            `yaml:"base_url"`
	RequestTimeout string            `yaml:"request_timeout"`
	StartupTimeout string            `yaml:"startup_timeout"`
	Endpoints      map[string]string `yaml:"endpoints"`
	Fixtures       Fixtures          `yaml:"fixtures"`
}

// Default returns the built-in configuration, pointed at baseURL if it is not empty.
func Default(baseURL string) (*Config, error) {
	c := defaults()
	if baseURL != "" {
		c.baseURL = baseURL
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load builds a Config from the defaults, then the YAML file, then the environment, then
// opts.BaseURL, each overriding the one before. It fails if the result leaves any endpoint
// the suite uses undefined.
func Load(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", opts.EnvFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	c := defaults()

	if opts.FilePath != "" {
		if err := c.applyFile(opts.FilePath); err != nil {
			return nil, err
		}
	}
	if err := c.applyEnv(os.Environ()); err != nil {
		return nil, err
	}
	if opts.BaseURL != "" {
		c.baseURL = opts.BaseURL
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func defaults() *Config {
	c := &Config{
		baseURL:        DefaultBaseURL,
		endpoints:      make(map[servicedef.EndpointName]string, len(servicedef.DefaultEndpointPaths)),
		requestTimeout: DefaultRequestTimeout,
		startupTimeout: DefaultStartupTimeout,
		fixtures:       DefaultFixtures,
	}
	for name, path := range servicedef.DefaultEndpointPaths {
		c.endpoints[name] = path
	}
	return c
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	fc := fileConfig{Fixtures: c.fixtures}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if fc.BaseURL != "" {
		c.baseURL = fc.BaseURL
	}
	if c.requestTimeout, err = parseDuration("request_timeout", fc.RequestTimeout, c.requestTimeout); err != nil {
		return err
	}
	if c.startupTimeout, err = parseDuration("startup_timeout", fc.StartupTimeout, c.startupTimeout); err != nil {
		return err
	}
	for name, p := range fc.Endpoints {
		if !isKnownEndpoint(servicedef.EndpointName(name)) {
			return fmt.Errorf("config %s: unknown endpoint name %q", path, name)
		}
		c.endpoints[servicedef.EndpointName(name)] = p
	}
	c.fixtures = fc.Fixtures
	return nil
}

// applyEnv reads INTERVIEW_BASE_URL, INTERVIEW_REQUEST_TIMEOUT, INTERVIEW_STARTUP_TIMEOUT
// and INTERVIEW_ENDPOINT_<NAME>, where NAME is the endpoint name upper-cased with dashes
// turned into underscores.
func (c *Config) applyEnv(environ []string) error {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}

	if v := env[envBaseURL]; v != "" {
		c.baseURL = v
	}
	var err error
	if c.requestTimeout, err = parseDuration(envRequestTimeout, env[envRequestTimeout], c.requestTimeout); err != nil {
		return err
	}
	if c.startupTimeout, err = parseDuration(envStartupTimeout, env[envStartupTimeout], c.startupTimeout); err != nil {
		return err
	}
	for _, name := range servicedef.AllEndpoints {
		if v := env[EndpointEnvVar(name)]; v != "" {
			c.endpoints[name] = v
		}
	}
	return nil
}

// EndpointEnvVar returns the environment variable that overrides the path of an endpoint.
func EndpointEnvVar(name servicedef.EndpointName) string {
	return envEndpointPrefix + strings.ToUpper(strings.ReplaceAll(string(name), "-", "_"))
}

func parseDuration(key, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func isKnownEndpoint(name servicedef.EndpointName) bool {
	for _, n := range servicedef.AllEndpoints {
		if n == name {
			return true
		}
	}
	return false
}

func (c *Config) validate() error {
	var problems []string

	u, err := url.Parse(c.baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("base URL %q is not an absolute http(s) URL", c.baseURL))
	}
	c.baseURL = strings.TrimSuffix(c.baseURL, "/")

	var missing []string
	for _, name := range servicedef.AllEndpoints {
		p, ok := c.endpoints[name]
		switch {
		case !ok || p == "":
			missing = append(missing, string(name))
		case !strings.HasPrefix(p, "/"):
			problems = append(problems, fmt.Sprintf("endpoint %q path %q must start with /", name, p))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		problems = append(problems, "undefined endpoints: "+strings.Join(missing, ", "))
	}

	if c.requestTimeout <= 0 {
		problems = append(problems, "request timeout must be positive")
	}
	if c.startupTimeout <= 0 {
		problems = append(problems, "startup timeout must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// BaseURL returns the service base URL, without a trailing slash.
func (c *Config) BaseURL() string { return c.baseURL }

// Endpoint returns the path of a logical endpoint. Every name in
// servicedef.AllEndpoints is guaranteed to be defined; any other name is a programming
// error and panics.
func (c *Config) Endpoint(name servicedef.EndpointName) string {
	p, ok := c.endpoints[name]
	if !ok {
		panic(fmt.Sprintf("endpoint %q is not part of the configuration", name))
	}
	return p
}

// URL returns the absolute URL of a logical endpoint.
func (c *Config) URL(name servicedef.EndpointName) string {
	return c.baseURL + c.Endpoint(name)
}

// RequestTimeout bounds every single request the harness makes.
func (c *Config) RequestTimeout() time.Duration { return c.requestTimeout }

// StartupTimeout bounds how long the harness waits for the service to respond at all.
func (c *Config) StartupTimeout() time.Duration { return c.startupTimeout }

// Fixtures returns a copy of the seeded fixture data.
func (c *Config) Fixtures() Fixtures { return c.fixtures }
