package config

import (
	"errors"
	"fmt"
	"strings"

	"bandiwala/internal/pricing"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	RabbitMQURL string
	CORSOrigins []string

	KafkaBrokers []string
	KafkaTopic   string

	Fees pricing.Fees

	R2 R2Config
}

type R2Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// Enabled reports whether every R2 setting is present.
func (c R2Config) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// Load reads .env (outside production) and then the process environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	v.SetDefault("PORT", "8000")
	v.SetDefault("PLATFORM_FEE", pricing.DefaultFees.PlatformFee)
	v.SetDefault("DELIVERY_CHARGE", pricing.DefaultFees.DeliveryCharge)
	v.SetDefault("TAX_RATE", pricing.DefaultFees.TaxRate)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("KAFKA_TOPIC", "bandiwala.orders")

	fees, err := loadFees(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        v.GetString("PORT"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),

		KafkaBrokers: splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:   v.GetString("KAFKA_TOPIC"),
		Fees:         fees,
		R2: R2Config{
			Endpoint:      v.GetString("R2_ENDPOINT"),
			AccessKey:     v.GetString("R2_ACCESS_KEY"),
			SecretKey:     v.GetString("R2_SECRET_KEY"),
			Bucket:        v.GetString("R2_BUCKET_NAME"),
			PublicBaseURL: v.GetString("R2_PUBLIC_BASE_URL"),
		},
	}

	return cfg, nil
}

func loadFees(v *viper.Viper) (pricing.Fees, error) {
	var fees pricing.Fees
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"PLATFORM_FEE", &fees.PlatformFee},
		{"DELIVERY_CHARGE", &fees.DeliveryCharge},
		{"TAX_RATE", &fees.TaxRate},
	} {
		n, err := cast.ToFloat64E(v.Get(f.key))
		if err != nil {
			return pricing.Fees{}, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}
	return fees, nil
}

// Validate fails fast on settings the API cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
