package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Stripe   StripeConfig
	Firebase FirebaseConfig
	Site     SiteConfig
	Sweep    SweepConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
}

type StripeConfig struct {
	SecretKey string
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

// SiteConfig holds the public frontend base URL used to build checkout
// redirect targets.
type SiteConfig struct {
	Domain string
}

// SweepConfig controls the background pass that finishes payments left in
// pending by a crash between the payment insert and the parcel update.
type SweepConfig struct {
	Interval   time.Duration
	PendingAge time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "3000"),
			Env:          envOr("APP_ENV", "development"),
			ReadTimeout:  durationOr("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: durationOr("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Mongo: MongoConfig{
			URI:            envOr("MONGO_URI", "mongodb://localhost:27017"),
			Database:       envOr("MONGO_DB", "ZapShift"),
			ConnectTimeout: durationOr("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			QueryTimeout:   durationOr("MONGO_QUERY_TIMEOUT", 5*time.Second),
		},
		Stripe: StripeConfig{
			SecretKey: os.Getenv("STRIPE_KEY"),
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		},
		Site: SiteConfig{
			Domain: envOr("SITE_DOMAIN", "http://localhost:5173"),
		},
		Sweep: SweepConfig{
			Interval:   durationOr("SWEEP_INTERVAL", time.Minute),
			PendingAge: durationOr("SWEEP_PENDING_AGE", 2*time.Minute),
		},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return def
}
