package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
)

// These tests share viper's global state and must not run in parallel.

func setupViper(t *testing.T, apiURL string) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("api", apiURL)
	viper.Set("token", "cli-token")
	viper.Set("output", constants.FormatJSON)
}

func TestDealsGetCommand_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/deals/7", request.URL.Path)
		assert.Equal(t, "cli-token", request.URL.Query().Get("api_token"))
		_, _ = writer.Write([]byte(`{"success":true,"data":{"id":7,"title":"Big deal"}}`))
	}))
	defer server.Close()

	setupViper(t, server.URL)

	var out bytes.Buffer

	cmd := NewDealsCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"get", "7"})

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `{"id":7,"title":"Big deal"}`, out.String())
}

func TestPersonsCreateCommand_Run(t *testing.T) {
	var body map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		_ = json.NewDecoder(request.Body).Decode(&body)
		_, _ = writer.Write([]byte(`{"success":true,"data":{"id":3}}`))
	}))
	defer server.Close()

	setupViper(t, server.URL)

	cmd := NewPersonsCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"create", "--name", "Ada", "--phone", "123", "--field", "abc=VIP"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Ada", body["name"])
	assert.Equal(t, []interface{}{map[string]interface{}{"value": "123"}}, body["phone"])
	assert.Equal(t, "VIP", body["abc"])
	assert.NotContains(t, body, "email")
	assert.NotContains(t, body, "owner_id")
}

func TestActivitiesCreateCommand_RequiresDueDate(t *testing.T) {
	setupViper(t, "http://127.0.0.1:1")

	cmd := NewActivitiesCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"create", "--subject", "Call"})

	err := cmd.Execute()
	require.ErrorIs(t, err, constants.ErrDueDateRequired)
}

func TestDealFieldsOptionLabelCommand_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"success":true,"data":[{"id":1,"key":"k1","options":[{"id":1,"label":"Low"}]}]}`))
	}))
	defer server.Close()

	setupViper(t, server.URL)
	viper.Set("output", constants.FormatTable)

	var out bytes.Buffer

	cmd := NewDealFieldsCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"option-label", "k1", "1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Low\n", out.String())

	cmd = NewDealFieldsCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"option-label", "k1", "99"})

	require.ErrorIs(t, cmd.Execute(), constants.ErrFieldOptionNotFound)
}

func TestCreateClient_RequiresToken(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := CreateClient()
	require.ErrorIs(t, err, constants.ErrNoTokenConfigured)
}

func TestConfigSetAndUnset(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("output: table\n"), constants.ConfigFilePerm))

	viper.SetConfigFile(configFile)
	require.NoError(t, viper.ReadInConfig())

	var out bytes.Buffer

	cmd := NewConfigCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"set", "token", "secret"})
	require.NoError(t, cmd.Execute())
	assert.NotContains(t, out.String(), "secret")

	cmd = NewConfigCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"set", "company_domain", "acme"})
	require.NoError(t, cmd.Execute())

	saved := readConfigFile(t, configFile)
	assert.Equal(t, "secret", saved.Token)
	assert.Equal(t, "acme", saved.CompanyDomain)

	cmd = NewConfigCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"unset", "token"})
	require.NoError(t, cmd.Execute())

	saved = readConfigFile(t, configFile)
	assert.Empty(t, saved.Token)
	assert.Equal(t, "acme", saved.CompanyDomain)

	cmd = NewConfigCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"set", "colour", "blue"})
	require.ErrorIs(t, cmd.Execute(), constants.ErrUnknownConfigKey)

	cmd = NewConfigCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"set", "timeout", "soon"})
	require.ErrorIs(t, cmd.Execute(), constants.ErrInvalidTimeout)
}

func TestConfigShow_MasksToken(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("token", "secret")
	viper.Set("output", constants.FormatYAML)

	var out bytes.Buffer

	cmd := NewConfigCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"show"})
	require.NoError(t, cmd.Execute())

	assert.NotContains(t, out.String(), "secret")
	assert.Contains(t, out.String(), constants.MaskedSecret)
}

func readConfigFile(t *testing.T, path string) Config {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // test temp file
	require.NoError(t, err)

	var config Config
	require.NoError(t, yaml.Unmarshal(data, &config))

	return config
}
