package brackets

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()

	assert.Equal(t, "brackets <season>", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)
}

func TestBracketsCommand_Execute(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantOutput  []string
		notInOutput []string
		wantErr     bool
	}{
		{
			name:        "legacy season lists arena only",
			args:        []string{"7"},
			wantOutput:  []string{"Season 7 brackets:", "2v2", "3v3", "5v5", "rbg is unavailable before season 9"},
			notInOutput: []string{"  rbg\n"},
		},
		{
			name:       "modern season includes rbg",
			args:       []string{"10"},
			wantOutput: []string{"Season 10 brackets:", "2v2", "3v3", "5v5", "rbg"},
		},
		{
			name:    "missing argument",
			args:    []string{},
			wantErr: true,
		},
		{
			name:    "too many arguments",
			args:    []string{"7", "8"},
			wantErr: true,
		},
		{
			name:    "non-numeric season",
			args:    []string{"seven"},
			wantErr: true,
		},
		{
			name:    "zero season",
			args:    []string{"0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand()
			cmd.SetArgs(tt.args)

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			err := cmd.Execute()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
			for _, notWant := range tt.notInOutput {
				assert.NotContains(t, out.String(), notWant)
			}
		})
	}
}

func TestPrintBrackets_JSON(t *testing.T) {
	t.Setenv("ARENADUMP_JSON", "true")

	var buf bytes.Buffer
	require.NoError(t, printBrackets(&buf, 10))

	var result struct {
		Status string `json:"status"`
		Data   struct {
			Season   int      `json:"season"`
			Brackets []string `json:"brackets"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 10, result.Data.Season)
	assert.Equal(t, []string{"2v2", "3v3", "5v5", "rbg"}, result.Data.Brackets)
}
