package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

// FileName is the default project configuration file.
const FileName = "payroll.yaml"

// Environment overrides for the storage source.
const (
	EnvSASToken   = "PAYROLL_SAS_TOKEN"
	EnvAccountURL = "PAYROLL_ACCOUNT_URL"
)

// Config represents the top-level payroll.yaml configuration.
type Config struct {
	Business  BusinessConfig   `yaml:"business"`
	Source    SourceConfig     `yaml:"source"`
	Period    PeriodConfig     `yaml:"period,omitempty"`
	Defaults  PolicyConfig     `yaml:"defaults"`
	Employees []EmployeePolicy `yaml:"employees,omitempty"`
	Rules     RulesConfig      `yaml:"rules"`
	Timecard  TimecardConfig   `yaml:"timecard"`
	Engine    EngineConfig     `yaml:"engine"`
}

// BusinessConfig identifies the business.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// SourceConfig locates the transaction and employee exports.
// Directory, when set, replaces remote storage with a local folder.
type SourceConfig struct {
	AccountURL   string        `yaml:"account_url,omitempty"`
	Container    string        `yaml:"container,omitempty"`
	SASToken     string        `yaml:"sas_token,omitempty"`
	Directory    string        `yaml:"directory,omitempty"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	FetchWorkers int           `yaml:"fetch_workers"`
	FetchRate    float64       `yaml:"fetch_rate"` // requests per second, 0 = unlimited
}

// PeriodConfig holds an optional default pay period start ("YYYY-MM-DD").
type PeriodConfig struct {
	Start string `yaml:"start,omitempty"`
}

// PolicyConfig is a pay policy. Pointer fields distinguish unset from false/zero
// so employee entries can override only what they name.
type PolicyConfig struct {
	PayStructure          model.PayStructure `yaml:"pay_structure,omitempty"`
	CommissionRate        *float64           `yaml:"commission_rate,omitempty"`
	HourlyRate            *float64           `yaml:"hourly_rate,omitempty"`
	HasAddings            *bool              `yaml:"has_addings,omitempty"`
	HasTips               *bool              `yaml:"has_tips,omitempty"`
	HasDiscountDeductions *bool              `yaml:"has_discount_deductions,omitempty"`
}

// EmployeePolicy assigns a policy to an employee matched by ID or name.
type EmployeePolicy struct {
	ID           string `yaml:"id,omitempty"`
	Name         string `yaml:"name,omitempty"`
	PolicyConfig `yaml:",inline"`
}

// RulesConfig configures service-name rules. Empty lists fall back to the
// built-in tables.
type RulesConfig struct {
	DiscountShare *float64       `yaml:"discount_share,omitempty"`
	RefillKeyword string         `yaml:"refill_keyword,omitempty"`
	Addings       []AddingRule   `yaml:"addings,omitempty"`
	ServicePrices []ServicePrice `yaml:"service_prices,omitempty"`
}

// AddingRule pays Amount for services whose name contains Contains and none of Exclude.
type AddingRule struct {
	Contains string   `yaml:"contains"`
	Exclude  []string `yaml:"exclude,omitempty"`
	Amount   float64  `yaml:"amount"`
}

// ServicePrice is the list price assumed for a service that posts at zero.
type ServicePrice struct {
	Service string  `yaml:"service"`
	Price   float64 `yaml:"price"`
}

// TimecardConfig controls timecard sheet resolution.
type TimecardConfig struct {
	StrictMatching bool `yaml:"strict_matching"`
}

// EngineConfig controls the calculation engine.
type EngineConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU
}

// Load reads a payroll.yaml file from disk, then applies secrets from a .env
// file in the same directory and from the environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envPath, err)
	}
	cfg.applyEnv()

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvSASToken)); v != "" {
		c.Source.SASToken = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAccountURL)); v != "" {
		c.Source.AccountURL = v
	}
}

// Save writes a Config to a YAML file. The SAS token is never written; it
// belongs in .env.
func Save(path string, cfg *Config) error {
	out := *cfg
	out.Source.SASToken = ""
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Source: SourceConfig{
			Container:    "reports",
			FetchTimeout: 60 * time.Second,
			FetchWorkers: 4,
			FetchRate:    10,
		},
		Defaults: PolicyConfig{
			PayStructure:          model.PayHourlyOnly,
			CommissionRate:        ptr(0.0),
			HourlyRate:            ptr(14.00),
			HasAddings:            ptr(false),
			HasTips:               ptr(false),
			HasDiscountDeductions: ptr(false),
		},
		Rules: RulesConfig{
			DiscountShare: ptr(0.5),
		},
		Timecard: TimecardConfig{StrictMatching: true},
	}
}

// Validate reports structural problems with the configuration.
func (c *Config) Validate() error {
	var problems []string
	if c.Source.Directory == "" && c.Source.AccountURL == "" {
		problems = append(problems, "source: either directory or account_url is required")
	}
	if c.Source.AccountURL != "" && c.Source.Container == "" {
		problems = append(problems, "source: container is required with account_url")
	}
	if c.Source.FetchWorkers < 0 {
		problems = append(problems, "source: fetch_workers must not be negative")
	}
	if c.Source.FetchRate < 0 {
		problems = append(problems, "source: fetch_rate must not be negative")
	}
	if c.Defaults.PayStructure != "" && !c.Defaults.PayStructure.Valid() {
		problems = append(problems, fmt.Sprintf("defaults: unknown pay_structure %q", c.Defaults.PayStructure))
	}
	for i, e := range c.Employees {
		if e.ID == "" && e.Name == "" {
			problems = append(problems, fmt.Sprintf("employees[%d]: id or name is required", i))
		}
		if e.PayStructure != "" && !e.PayStructure.Valid() {
			problems = append(problems, fmt.Sprintf("employees[%d]: unknown pay_structure %q", i, e.PayStructure))
		}
	}
	if d := c.Rules.DiscountShare; d != nil && (*d < 0 || *d > 1) {
		problems = append(problems, "rules: discount_share must be between 0 and 1")
	}
	for i, r := range c.Rules.Addings {
		if strings.TrimSpace(r.Contains) == "" {
			problems = append(problems, fmt.Sprintf("rules.addings[%d]: contains is required", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
