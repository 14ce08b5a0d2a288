package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c, err := Default("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultRequestTimeout, c.RequestTimeout())
	assert.Equal(t, "/user/login", c.Endpoint(servicedef.EndpointUserLogin))
	assert.Equal(t, DefaultBaseURL+"/user/auth/signup", c.URL(servicedef.EndpointUserSignup))
	assert.Equal(t, DefaultFixtures, c.Fixtures())
}

func TestDefaultConfigTrimsTrailingSlash(t *testing.T) {
	c, err := Default("http://localhost:9999/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", c.BaseURL())
}

func TestDefaultConfigRejectsRelativeBaseURL(t *testing.T) {
	_, err := Default("localhost:9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an absolute http(s) URL")
}

func TestEveryEndpointHasADefaultPath(t *testing.T) {
	for _, name := range servicedef.AllEndpoints {
		assert.NotEmpty(t, servicedef.DefaultEndpointPaths[name], "no default path for %s", name)
	}
}

func TestEndpointPanicsForUnknownName(t *testing.T) {
	c, err := Default("")
	require.NoError(t, err)
	assert.Panics(t, func() { c.Endpoint("no-such-endpoint") })
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
base_url: http://interview.test:8080
request_timeout: 3s
endpoints:
  admin-login: /admin/login
fixtures:
  admin_phone: "13800138000"
`)

	c, err := Load(LoadOptions{FilePath: path, EnvFile: writeFile(t, "empty.env", "")})
	require.NoError(t, err)

	assert.Equal(t, "http://interview.test:8080", c.BaseURL())
	assert.Equal(t, 3*time.Second, c.RequestTimeout())
	assert.Equal(t, "/admin/login", c.Endpoint(servicedef.EndpointAdminLogin))
	assert.Equal(t, "/user/login", c.Endpoint(servicedef.EndpointUserLogin))

	f := c.Fixtures()
	assert.Equal(t, "13800138000", f.AdminPhone)
	assert.Equal(t, DefaultFixtures.AdminPassword, f.AdminPassword, "unset fixtures keep their defaults")
}

func TestLoadFailsFastOnUndefinedEndpoint(t *testing.T) {
	path := writeFile(t, "config.yaml", `
endpoints:
  user-login: ""
  user-signup: ""
`)

	_, err := Load(LoadOptions{FilePath: path, EnvFile: writeFile(t, "empty.env", "")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined endpoints: user-login, user-signup")
}

func TestLoadRejectsUnknownEndpointName(t *testing.T) {
	path := writeFile(t, "config.yaml", "endpoints:\n  user-logout: /user/logout\n")

	_, err := Load(LoadOptions{FilePath: path, EnvFile: writeFile(t, "empty.env", "")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown endpoint name "user-logout"`)
}

func TestLoadRejectsRelativeEndpointPath(t *testing.T) {
	path := writeFile(t, "config.yaml", "endpoints:\n  user-login: user/login\n")

	_, err := Load(LoadOptions{FilePath: path, EnvFile: writeFile(t, "empty.env", "")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must start with /")
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "base_url: http://from-file:1\nrequest_timeout: 3s\n")
	t.Setenv(envBaseURL, "http://from-env:2")
	t.Setenv(envRequestTimeout, "750ms")
	t.Setenv(EndpointEnvVar(servicedef.EndpointUserForget), "/user/forgot")

	c, err := Load(LoadOptions{FilePath: path, EnvFile: writeFile(t, "empty.env", "")})
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:2", c.BaseURL())
	assert.Equal(t, 750*time.Millisecond, c.RequestTimeout())
	assert.Equal(t, "/user/forgot", c.Endpoint(servicedef.EndpointUserForget))
}

func TestLoadFromEnvFile(t *testing.T) {
	envFile := writeFile(t, "test.env", "INTERVIEW_STARTUP_TIMEOUT=2s\n")
	t.Cleanup(func() { os.Unsetenv(envStartupTimeout) })

	c, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.StartupTimeout())
}

func TestLoadBaseURLOptionWins(t *testing.T) {
	t.Setenv(envBaseURL, "http://from-env:2")

	c, err := Load(LoadOptions{BaseURL: "http://from-flag:3", EnvFile: writeFile(t, "empty.env", "")})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:3", c.BaseURL())
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv(envRequestTimeout, "soon")

	_, err := Load(LoadOptions{EnvFile: writeFile(t, "empty.env", "")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid INTERVIEW_REQUEST_TIMEOUT")
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv(envRequestTimeout, "0s")

	_, err := Load(LoadOptions{EnvFile: writeFile(t, "empty.env", "")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request timeout must be positive")
}

func TestEndpointEnvVar(t *testing.T) {
	assert.Equal(t, "INTERVIEW_ENDPOINT_USER_RESET_PASSWORD", EndpointEnvVar(servicedef.EndpointUserResetPassword))
}
