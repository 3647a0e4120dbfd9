package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// ExchangeRates maps directional currency pairs ("USD_KES") to their
	// conversion multiplier.
	ExchangeRates map[string]decimal.Decimal
}

// defaultExchangeRates backs deployments that do not configure EXCHANGE_RATES.
const defaultExchangeRates = "USD_KES:130.00,USD_UGX:3700.00,USD_TZS:2500.00,USD_SSP:5000.00"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "tanina-wallet")
	viper.SetDefault("EXCHANGE_RATES", defaultExchangeRates)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	rates, err := ParseExchangeRates(viper.GetString("EXCHANGE_RATES"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXCHANGE_RATES: %w", err)
	}
	cfg.ExchangeRates = rates

	return cfg, nil
}

// ParseExchangeRates parses a comma-separated list of PAIR:RATE items, e.g.
// "USD_KES:130.00,USD_UGX:3700.00". Rates must be positive decimals.
func ParseExchangeRates(raw string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		pair, rateStr, found := strings.Cut(item, ":")
		if !found {
			return nil, fmt.Errorf("malformed rate entry %q, want PAIR:RATE", item)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(rateStr))
		if err != nil {
			return nil, fmt.Errorf("malformed rate value in %q: %w", item, err)
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("rate must be positive in %q", item)
		}
		rates[strings.TrimSpace(pair)] = rate
	}
	return rates, nil
}
