package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/compensation"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/contribution"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/loan"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/promotion"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
	Policy    PolicyConfig
	Reporter  ReporterConfig
	Scheduler SchedulerConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

// RedisConfig is optional; an empty Addr disables the loan type cache.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	LoanTypesTTL time.Duration
}

// KafkaConfig is optional; no brokers means events are dropped.
type KafkaConfig struct {
	Brokers     []string
	TopicPrefix string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// PolicyConfig carries the deployment's pay and eligibility rules.
type PolicyConfig struct {
	Contributions contribution.RateTable
	Compensation  compensation.Policy
	Loan          loan.EligibilityPolicy
	Promotion     promotion.Thresholds
}

type ReporterConfig struct {
	Timeout     time.Duration
	RecentLimit int
}

type SchedulerConfig struct {
	// BatchDay is the day of month the previous month's contributions are processed.
	BatchDay int
	Interval time.Duration
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; containers inject the environment directly.
	_ = godotenv.Load()

	config := &Config{}
	p := &parser{}

	// Database configuration
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     p.int("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_compensation"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(p.int("DB_MAX_CONNS", 25)),
		MinConns: int32(p.int("DB_MIN_CONNS", 5)),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Application configuration
	config.App = AppConfig{
		Port:        p.int("APP_PORT", 8080),
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins: getEnvSlice("CORS_ORIGINS", "http://localhost:3000"),
	}

	config.Redis = RedisConfig{
		Addr:         getEnv("REDIS_ADDR", ""),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           p.int("REDIS_DB", 0),
		LoanTypesTTL: p.duration("LOAN_TYPE_CACHE_TTL", 30*time.Minute),
	}

	config.Kafka = KafkaConfig{
		Brokers:     getEnvSlice("KAFKA_BROKERS", ""),
		TopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
	}

	config.RateLimit = RateLimitConfig{
		RPS:   p.float("RATE_LIMIT_RPS", 5),
		Burst: p.int("RATE_LIMIT_BURST", 10),
	}

	// Policy tables
	config.Policy = PolicyConfig{
		Contributions: contribution.RateTable{
			EmployeeEPFRate: p.decimal("EPF_EMPLOYEE_RATE", contribution.DefaultEmployeeEPFRate),
			EmployerEPFRate: p.decimal("EPF_EMPLOYER_RATE", contribution.DefaultEmployerEPFRate),
			ETFRate:         p.decimal("ETF_RATE", contribution.DefaultETFRate),
		},
		Compensation: compensation.Policy{
			Allowances: p.allowances("ALLOWANCES"),
			Deductions: compensation.DeductionSchedule{
				EPFRate:       p.decimal("DEDUCTION_EPF_RATE", decimal.Zero),
				InsuranceFlat: p.decimal("DEDUCTION_INSURANCE_FLAT", decimal.Zero),
				TaxRate:       p.decimal("DEDUCTION_TAX_RATE", decimal.Zero),
				TaxFlat:       p.optionalDecimal("DEDUCTION_TAX_FLAT"),
			},
		},
		Loan: loan.EligibilityPolicy{
			SalaryMultiple:     p.decimal("LOAN_SALARY_MULTIPLE", loan.DefaultSalaryMultiple),
			AffordabilityRatio: p.decimal("LOAN_AFFORDABILITY_RATIO", loan.DefaultAffordabilityRatio),
			HorizonMonths:      p.int("LOAN_HORIZON_MONTHS", loan.DefaultHorizonMonths),
			CreditScoreCeiling: p.int("LOAN_CREDIT_SCORE_CEILING", loan.DefaultCreditScoreCeiling),
		},
		Promotion: promotion.Thresholds{
			MinKPI:                p.float("PROMOTION_MIN_KPI", 75),
			MinTenureMonths:       p.int("PROMOTION_MIN_TENURE_MONTHS", 12),
			MinCompletedTrainings: p.int("PROMOTION_MIN_TRAININGS", 2),
		},
	}

	config.Reporter = ReporterConfig{
		Timeout:     p.duration("DASHBOARD_TIMEOUT", 5*time.Second),
		RecentLimit: p.int("RECENT_ACTIVITY_LIMIT", 5),
	}

	config.Scheduler = SchedulerConfig{
		BatchDay: p.int("CONTRIBUTION_BATCH_DAY", 1),
		Interval: p.duration("SCHEDULER_INTERVAL", time.Hour),
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	switch c.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.Scheduler.BatchDay < 1 || c.Scheduler.BatchDay > 28 {
		return fmt.Errorf("CONTRIBUTION_BATCH_DAY must be between 1 and 28")
	}
	if err := c.Policy.Contributions.Validate(); err != nil {
		return fmt.Errorf("contribution rates: %w", err)
	}
	if err := c.Policy.Loan.Validate(); err != nil {
		return fmt.Errorf("loan policy: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// parser collects every malformed variable so one failed start reports all of them.
type parser struct {
	errs []error
}

func (p *parser) fail(key string, err error) {
	p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", key, err))
}

func (p *parser) int(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return v
}

func (p *parser) float(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return v
}

func (p *parser) decimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return v
}

func (p *parser) optionalDecimal(key string) *decimal.Decimal {
	if os.Getenv(key) == "" {
		return nil
	}
	v := p.decimal(key, decimal.Zero)
	return &v
}

// allowances parses "name:amount,name:amount" in order.
func (p *parser) allowances(key string) []compensation.Line {
	var lines []compensation.Line
	for _, entry := range getEnvSlice(key, "") {
		name, amount, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			p.fail(key, fmt.Errorf("entry %q is not name:amount", entry))
			continue
		}
		v, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			p.fail(key, fmt.Errorf("entry %q: %w", entry, err))
			continue
		}
		if v.IsNegative() {
			p.fail(key, fmt.Errorf("entry %q must be non-negative", entry))
			continue
		}
		lines = append(lines, compensation.Line{Name: name, Amount: v})
	}
	return lines
}
