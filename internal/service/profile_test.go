package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfiles_Defaults(t *testing.T) {
	set, err := LoadProfiles("", ProfileStatement)
	require.NoError(t, err)

	assert.Equal(t, []string{ProfileGigaChat, ProfileStatement, ProfileSummaryGPT4}, set.Names())
	assert.Equal(t, ProfileStatement, set.Default())

	p, err := set.Get("")
	require.NoError(t, err)
	assert.Equal(t, ProfileStatement, p.Name)
	assert.Equal(t, "gpt-3.5-turbo", p.Model)
	assert.True(t, p.ExtractTransactions)

	p, err = set.Get(ProfileSummaryGPT4)
	require.NoError(t, err)
	assert.False(t, p.ExtractTransactions)
}

func TestProfileSet_UnknownProfile(t *testing.T) {
	set, err := LoadProfiles("", ProfileStatement)
	require.NoError(t, err)

	_, err = set.Get("nope")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, `Unknown analysis profile "nope"`, err.Error())
}

func TestLoadProfiles_UnknownDefault(t *testing.T) {
	_, err := LoadProfiles("", "missing")
	assert.Error(t, err)
}

func TestProfile_SummaryPromptUsesPrefix(t *testing.T) {
	set, err := LoadProfiles("", ProfileStatement)
	require.NoError(t, err)
	p, err := set.Get(ProfileStatement)
	require.NoError(t, err)

	text := strings.Repeat("a", 3000) + "TAIL"
	prompt, err := p.SummaryPrompt(text)
	require.NoError(t, err)

	assert.Contains(t, prompt, "NIFTY/SENSEX")
	assert.Contains(t, prompt, strings.Repeat("a", 3000))
	assert.NotContains(t, prompt, "TAIL")
}

func TestProfile_TransactionPromptUsesFullText(t *testing.T) {
	set, err := LoadProfiles("", ProfileStatement)
	require.NoError(t, err)
	p, err := set.Get(ProfileStatement)
	require.NoError(t, err)

	text := strings.Repeat("b", 3000) + "TAIL"
	prompt, err := p.TransactionPrompt(text)
	require.NoError(t, err)

	assert.Contains(t, prompt, "TAIL")
	assert.Contains(t, prompt, "food, transport, utilities")
	assert.Contains(t, prompt, `"category"`)
}

func TestProfile_TransactionPromptDisabled(t *testing.T) {
	set, err := LoadProfiles("", ProfileStatement)
	require.NoError(t, err)
	p, err := set.Get(ProfileSummaryGPT4)
	require.NoError(t, err)

	_, err = p.TransactionPrompt("text")
	assert.Error(t, err)
}

func TestLoadProfiles_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `
profiles:
  statement:
    model: gpt-4o-mini
  brief:
    model: gpt-4o
    summary_template: "Summarize briefly: {{.Text}}"
    summary_prefix_chars: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	set, err := LoadProfiles(path, ProfileStatement)
	require.NoError(t, err)

	p, err := set.Get(ProfileStatement)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.Model)
	assert.True(t, p.ExtractTransactions, "fields absent from the file keep built-in values")
	assert.Equal(t, 0.2, p.TransactionTemperature)

	brief, err := set.Get("brief")
	require.NoError(t, err)
	prompt, err := brief.SummaryPrompt("0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "Summarize briefly: 0123456789", prompt)
}

func TestLoadProfiles_InvalidTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `
profiles:
  broken:
    model: gpt-4o
    summary_template: "{{.Text"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := LoadProfiles(path, ProfileStatement)
	assert.Error(t, err)
}

func TestLoadProfiles_MissingTransactionTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `
profiles:
  partial:
    model: gpt-4o
    summary_template: "{{.Text}}"
    extract_transactions: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := LoadProfiles(path, ProfileStatement)
	assert.Error(t, err)
}
