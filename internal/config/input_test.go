package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/rules"
)

func testParser(env map[string]string, keyringValue string, keyringErr error) *InputParser {
	return &InputParser{
		getenv: func(k string) string { return env[k] },
		keyringGet: func(service, user string) (string, error) {
			return keyringValue, keyringErr
		},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := testParser(nil, "", nil)

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "invalid.yaml", "invalid: yaml: content: [unclosed")

	config, err := testParser(nil, "", nil).LoadFromFile(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_Defaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
reference_year: 2026
telegram:
  token: "abc"
`)

	config, err := testParser(nil, "", nil).LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2026, config.ReferenceYear)
	assert.Equal(t, "abc", config.Telegram.Token)
	assert.Equal(t, DefaultRulesPath, config.RulesPath)
	assert.Equal(t, DefaultMaxContributionDays, config.MaxContributionDays)
	assert.Equal(t, DefaultLanguage, config.Language)
	assert.Equal(t, DefaultPollTimeoutSecs, config.Telegram.PollTimeoutSecs)
	assert.Equal(t, DefaultIdleTTLMinutes, config.Session.IdleTTLMinutes)
	assert.Equal(t, DefaultPurgeSchedule, config.Session.PurgeSchedule)
	assert.Empty(t, config.Session.DBPath)
}

func TestInputParser_LoadFromFile_EnvironmentOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", `
rules_path: file.json
telegram:
  token: from-file
`)
	env := map[string]string{
		EnvBotToken:  "from-env",
		EnvRulesPath: "env.json",
		EnvSessionDB: "sessions.db",
	}

	config, err := testParser(env, "", nil).LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", config.Telegram.Token)
	assert.Equal(t, "env.json", config.RulesPath)
	assert.Equal(t, "sessions.db", config.Session.DBPath)
}

func TestInputParser_ConfigPath(t *testing.T) {
	assert.Equal(t, "config.yaml", testParser(nil, "", nil).ConfigPath("config.yaml"))
	assert.Equal(t, "/etc/sgk.yaml", testParser(map[string]string{EnvConfigPath: "/etc/sgk.yaml"}, "", nil).ConfigPath("config.yaml"))
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"reference year too small", func(c *Config) { c.ReferenceYear = 1800 }, "reference_year"},
		{"empty rules path", func(c *Config) { c.RulesPath = "" }, "rules_path"},
		{"zero max days", func(c *Config) { c.MaxContributionDays = 0 }, "max_contribution_days"},
		{"unknown language", func(c *Config) { c.Language = "de" }, "language"},
		{"poll timeout", func(c *Config) { c.Telegram.PollTimeoutSecs = 0 }, "poll_timeout_secs"},
		{"idle ttl", func(c *Config) { c.Session.IdleTTLMinutes = -1 }, "idle_ttl_minutes"},
		{"bad schedule", func(c *Config) { c.Session.PurgeSchedule = "every now and then" }, "purge_schedule"},
		{"cron schedule", func(c *Config) { c.Session.PurgeSchedule = "*/10 * * * *" }, ""},
	}

	parser := testParser(nil, "", nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := parser.ValidateConfiguration(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_ResolveToken(t *testing.T) {
	config := DefaultConfig()
	config.Telegram.Token = "configured"
	token, err := testParser(nil, "ignored", nil).ResolveToken(config)
	require.NoError(t, err)
	assert.Equal(t, "configured", token)

	config.Telegram.Token = ""
	token, err = testParser(nil, "from-keyring", nil).ResolveToken(config)
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", token)

	_, err = testParser(nil, "", keyring.ErrNotFound).ResolveToken(config)
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = testParser(nil, "", errors.New("dbus unavailable")).ResolveToken(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read keyring")
}

func TestInputParser_LoadRowTable(t *testing.T) {
	path := writeFile(t, "rules.json", `{
  "4A": [{"0": "KADIN"}, {"0": "01.01.2000 - 31.12.2005", "1": 5975, "2": "58"}],
  "4b": [],
  "4/C": [["1999 ve öncesi", "5400", "55"]]
}`)

	table, err := testParser(nil, "", nil).LoadRowTable(path)
	require.NoError(t, err)

	require.Len(t, table, 3)
	require.Len(t, table[domain.Status4A], 2)
	assert.Equal(t, "5975", table[domain.Status4A][1].Fields[1].Value)
	assert.Empty(t, table[domain.Status4B])
	assert.Equal(t, "1999 ve öncesi", table[domain.Status4C][0].Fields[0].Value)
}

func TestInputParser_LoadRowTable_HeaderKeyedRows(t *testing.T) {
	path := writeFile(t, "legacy.json", `{
  "4A": [
    {"KADIN": "01.01.2000 - 31.12.2005", "_1": "5975", "_2": "58"},
    {"KADIN": "ERKEK", "_1": "", "_2": ""},
    {"KADIN": "2008 ve sonrası", "_1": "7200", "_2": "60"}
  ]
}`)

	table, err := testParser(nil, "", nil).LoadRowTable(path)
	require.NoError(t, err)

	row := rules.NormalizeRow(table[domain.Status4A][0])
	assert.Equal(t, domain.Row{"01.01.2000 - 31.12.2005", "5975", "58"}, row, "document order kept")

	extracted := rules.ExtractTable(table[domain.Status4A])
	require.Len(t, extracted, 2)
	assert.Equal(t, 5975, extracted[0].RequiredDays)
	assert.Equal(t, domain.GenderMale, extracted[1].Gender)
	assert.Equal(t, domain.RangeOpenAfter, extracted[1].Range.Kind)
}

func TestInputParser_LoadRowTable_Errors(t *testing.T) {
	parser := testParser(nil, "", nil)

	_, err := parser.LoadRowTable(filepath.Join(t.TempDir(), "missing.json"))
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadRowTable(writeFile(t, "bad.json", `{"4A": "rows"}`))
	assert.Contains(t, err.Error(), "failed to parse rule table")

	_, err = parser.LoadRowTable(writeFile(t, "status.json", `{"5A": []}`))
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func validProfile() domain.UserProfile {
	return domain.UserProfile{
		Status:           domain.Status4A,
		Gender:           domain.GenderFemale,
		BirthDate:        "01.01.1962",
		EntryDate:        "10.05.2002",
		ContributionDays: 5975,
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.UserProfile)
		field  string
		cause  error
	}{
		{"status", func(p *domain.UserProfile) { p.Status = "4D" }, "status", domain.ErrUnknownStatus},
		{"gender", func(p *domain.UserProfile) { p.Gender = domain.GenderUnspecified }, "gender", domain.ErrInvalidGender},
		{"birth date", func(p *domain.UserProfile) { p.BirthDate = "1962" }, "birth_date", domain.ErrUnparseableDate},
		{"entry date", func(p *domain.UserProfile) { p.EntryDate = "10.05.02" }, "entry_date", domain.ErrUnparseableDate},
		{"negative days", func(p *domain.UserProfile) { p.ContributionDays = -1 }, "contribution_days", domain.ErrContributionDaysOutOfRange},
		{"too many days", func(p *domain.UserProfile) { p.ContributionDays = 25001 }, "contribution_days", domain.ErrContributionDaysOutOfRange},
	}

	assert.NoError(t, ValidateProfile(validProfile(), DefaultMaxContributionDays))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := validProfile()
			tt.mutate(&profile)

			err := ValidateProfile(profile, DefaultMaxContributionDays)
			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestParseProfile(t *testing.T) {
	profile, err := ParseProfile("4/a", "Kadın", " 1.1.1962 ", "10/05/2002", 5975)
	require.NoError(t, err)
	assert.Equal(t, domain.Status4A, profile.Status)
	assert.Equal(t, domain.GenderFemale, profile.Gender)
	assert.Equal(t, "1.1.1962", profile.BirthDate)
	assert.NoError(t, ValidateProfile(profile, DefaultMaxContributionDays))

	_, err = ParseProfile("4A", "x", "", "", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidGender)

	_, err = ParseProfile("9Z", "erkek", "", "", 0)
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}
