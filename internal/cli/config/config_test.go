package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()

	assert.Equal(t, "tw", viper.GetString(KeyRegion))
	assert.Equal(t, "./data", viper.GetString(KeyOutputDir))
	assert.False(t, viper.GetBool(KeyEnrich))
	assert.Equal(t, 3*time.Second, viper.GetDuration(KeyBracketPause))
	assert.Equal(t, 5*time.Second, viper.GetDuration(KeySeasonPause))
	assert.Equal(t, 10, viper.GetInt(KeyEnrichPauseEvery))
	assert.Equal(t, 2*time.Second, viper.GetDuration(KeyEnrichPause))
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()

	assert.Equal(t, "config", cmd.Use)
	assert.Contains(t, cmd.Aliases, "cfg")
	assert.Len(t, cmd.Commands(), 2)
}

func TestConfigShow_RedactsSecret(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set(KeyClientID, "my-client")
	viper.Set(KeyClientSecret, "super-secret")

	cmd := NewCommand()
	cmd.SetArgs([]string{"show"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "my-client")
	assert.Contains(t, out.String(), "<redacted>")
	assert.NotContains(t, out.String(), "super-secret")
}

func TestConfigShow_OmitsUnsetSecret(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()

	cmd := NewCommand()
	cmd.SetArgs([]string{"show"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.NotContains(t, out.String(), KeyClientSecret)
}

func TestConfigPath_NoConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := NewCommand()
	cmd.SetArgs([]string{"path"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "no config file in use")
}
