package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// Keyring entry holding the Telegram token when it is not in the config
// file or the environment.
const (
	KeyringService = "sgkcalc"
	KeyringUser    = "telegram"
)

// Environment overrides.
const (
	EnvConfigPath = "SGKCALC_CONFIG"
	EnvBotToken   = "SGKCALC_BOT_TOKEN"
	EnvRulesPath  = "SGKCALC_RULES"
	EnvSessionDB  = "SGKCALC_DB"
)

// Default values applied before the file is read.
const (
	DefaultRulesPath           = "sgk_rules.json"
	DefaultMaxContributionDays = 25000
	DefaultLanguage            = "tr"
	DefaultLogLevel            = "info"
	DefaultPollTimeoutSecs     = 30
	DefaultIdleTTLMinutes      = 30
	DefaultPurgeSchedule       = "@every 5m"
	DefaultMetricsAddr         = ":9090"
)

// ErrMissingToken is returned by ResolveToken when no token source is set.
var ErrMissingToken = errors.New("telegram token is not configured")

// Config is the application configuration.
type Config struct {
	// ReferenceYear is the "as of" year for ages. Zero means the current year.
	ReferenceYear       int            `yaml:"reference_year"`
	RulesPath           string         `yaml:"rules_path"`
	MaxContributionDays int            `yaml:"max_contribution_days"`
	LogLevel            string         `yaml:"log_level"`
	Language            string         `yaml:"language"`
	MetricsAddr         string         `yaml:"metrics_addr"`
	Telegram            TelegramConfig `yaml:"telegram"`
	Session             SessionConfig  `yaml:"session"`
}

// TelegramConfig configures the long-polling bot.
type TelegramConfig struct {
	Token           string `yaml:"token"`
	PollTimeoutSecs int    `yaml:"poll_timeout_secs"`
	Debug           bool   `yaml:"debug"`
}

// SessionConfig configures conversation session storage. An empty DBPath
// keeps sessions in memory.
type SessionConfig struct {
	DBPath         string `yaml:"db_path"`
	IdleTTLMinutes int    `yaml:"idle_ttl_minutes"`
	PurgeSchedule  string `yaml:"purge_schedule"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		RulesPath:           DefaultRulesPath,
		MaxContributionDays: DefaultMaxContributionDays,
		LogLevel:            DefaultLogLevel,
		Language:            DefaultLanguage,
		MetricsAddr:         DefaultMetricsAddr,
		Telegram: TelegramConfig{
			PollTimeoutSecs: DefaultPollTimeoutSecs,
		},
		Session: SessionConfig{
			IdleTTLMinutes: DefaultIdleTTLMinutes,
			PurgeSchedule:  DefaultPurgeSchedule,
		},
	}
}

// InputParser handles parsing of configuration and rule table files
type InputParser struct {
	getenv     func(string) string
	keyringGet func(service, user string) (string, error)
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{
		getenv:     os.Getenv,
		keyringGet: keyring.Get,
	}
}

// ConfigPath returns the config path from the environment, or fallback.
func (ip *InputParser) ConfigPath(fallback string) string {
	if p := ip.getenv(EnvConfigPath); p != "" {
		return p
	}
	return fallback
}

// LoadFromFile loads configuration from a YAML file, then applies
// environment overrides and validates the result.
func (ip *InputParser) LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ip.applyEnvironment(config)

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadOrDefault is LoadFromFile when filename is set, and the defaults
// plus environment otherwise.
func (ip *InputParser) LoadOrDefault(filename string) (*Config, error) {
	if filename != "" {
		return ip.LoadFromFile(filename)
	}
	config := DefaultConfig()
	ip.applyEnvironment(config)
	return config, ip.ValidateConfiguration(config)
}

func (ip *InputParser) applyEnvironment(config *Config) {
	if v := ip.getenv(EnvBotToken); v != "" {
		config.Telegram.Token = v
	}
	if v := ip.getenv(EnvRulesPath); v != "" {
		config.RulesPath = v
	}
	if v := ip.getenv(EnvSessionDB); v != "" {
		config.Session.DBPath = v
	}
}

// ResolveToken returns the Telegram token from the config, falling back
// to the system keyring.
func (ip *InputParser) ResolveToken(config *Config) (string, error) {
	if config.Telegram.Token != "" {
		return config.Telegram.Token, nil
	}
	token, err := ip.keyringGet(KeyringService, KeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrMissingToken
		}
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Config) error {
	if config.ReferenceYear != 0 && (config.ReferenceYear < 1900 || config.ReferenceYear > 2100) {
		return fmt.Errorf("reference_year must be between 1900 and 2100, got %d", config.ReferenceYear)
	}
	if config.RulesPath == "" {
		return fmt.Errorf("rules_path is required")
	}
	if config.MaxContributionDays <= 0 {
		return fmt.Errorf("max_contribution_days must be positive")
	}
	switch config.Language {
	case "tr", "en":
	default:
		return fmt.Errorf("language must be 'tr' or 'en', got %q", config.Language)
	}
	if err := ip.validateTelegram(&config.Telegram); err != nil {
		return fmt.Errorf("telegram validation failed: %w", err)
	}
	if err := ip.validateSession(&config.Session); err != nil {
		return fmt.Errorf("session validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateTelegram(tg *TelegramConfig) error {
	if tg.PollTimeoutSecs < 1 || tg.PollTimeoutSecs > 600 {
		return fmt.Errorf("poll_timeout_secs must be between 1 and 600")
	}
	return nil
}

func (ip *InputParser) validateSession(s *SessionConfig) error {
	if s.IdleTTLMinutes <= 0 {
		return fmt.Errorf("idle_ttl_minutes must be positive")
	}
	if _, err := cron.ParseStandard(s.PurgeSchedule); err != nil {
		return fmt.Errorf("invalid purge_schedule %q: %w", s.PurgeSchedule, err)
	}
	return nil
}

// LoadRowTable reads a converted rule table: a JSON object keyed by status
// code whose values are arrays of row records.
func (ip *InputParser) LoadRowTable(filename string) (domain.RowTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var raw map[string][]domain.RawRow
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse rule table %s: %w", filename, err)
	}

	table := make(domain.RowTable, len(raw))
	for key, rows := range raw {
		status, err := domain.ParseStatus(key)
		if err != nil {
			return nil, fmt.Errorf("rule table %s: %w", filename, err)
		}
		table[status] = append(table[status], rows...)
	}
	return table, nil
}

// ValidateProfile rejects profile fields the engine cannot compute with.
// Errors are *domain.FieldError values wrapping the domain sentinels.
func ValidateProfile(profile domain.UserProfile, maxContributionDays int) error {
	if _, err := domain.ParseStatus(string(profile.Status)); err != nil {
		return &domain.FieldError{Field: "status", Value: string(profile.Status), Err: domain.ErrUnknownStatus}
	}
	if profile.Gender != domain.GenderMale && profile.Gender != domain.GenderFemale {
		return &domain.FieldError{Field: "gender", Value: profile.Gender.String(), Err: domain.ErrInvalidGender}
	}
	if _, err := domain.ParseDate(profile.BirthDate); err != nil {
		return &domain.FieldError{Field: "birth_date", Value: profile.BirthDate, Err: domain.ErrUnparseableDate}
	}
	if _, err := domain.ParseDate(profile.EntryDate); err != nil {
		return &domain.FieldError{Field: "entry_date", Value: profile.EntryDate, Err: domain.ErrUnparseableDate}
	}
	if profile.ContributionDays < 0 || profile.ContributionDays > maxContributionDays {
		return &domain.FieldError{
			Field: "contribution_days",
			Value: fmt.Sprint(profile.ContributionDays),
			Err:   fmt.Errorf("%w: must be between 0 and %d", domain.ErrContributionDaysOutOfRange, maxContributionDays),
		}
	}
	return nil
}

// ParseProfile builds a profile from the text forms users type. Dates are
// kept as typed; ValidateProfile checks them.
func ParseProfile(status, gender, birthDate, entryDate string, contributionDays int) (domain.UserProfile, error) {
	code, err := domain.ParseStatus(status)
	if err != nil {
		return domain.UserProfile{}, &domain.FieldError{Field: "status", Value: status, Err: err}
	}
	g, err := domain.ParseGender(gender)
	if err != nil {
		return domain.UserProfile{}, &domain.FieldError{Field: "gender", Value: gender, Err: err}
	}
	return domain.UserProfile{
		Status:           code,
		Gender:           g,
		BirthDate:        strings.TrimSpace(birthDate),
		EntryDate:        strings.TrimSpace(entryDate),
		ContributionDays: contributionDays,
	}, nil
}
