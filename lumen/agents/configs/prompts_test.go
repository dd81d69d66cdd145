package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Contains(t, p.Decision, `{"search_web":`)
	assert.Contains(t, p.Decision, `{"direct_response":`)
	assert.Contains(t, p.Synthesis, "same language")
	assert.Equal(t, "Describe this image in detail.", p.VisionQuestion)
}

func TestLoadPrompts_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("synthesis: Be brief.\n"), 0o644))

	p, err := LoadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, "Be brief.", p.Synthesis)
	assert.Equal(t, Default().Decision, p.Decision)
}

func TestLoadPrompts_Errors(t *testing.T) {
	_, err := LoadPrompts(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("decision: [unclosed\n"), 0o644))
	_, err = LoadPrompts(path)
	assert.Error(t, err)
}

func TestLoadPrompts_EmptyPath(t *testing.T) {
	p, err := LoadPrompts("")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}
