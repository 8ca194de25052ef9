package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Taxi     RemoteConfig   `yaml:"taxi_service"`
	Hotel    RemoteConfig   `yaml:"hotel_service"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	TripEventsTopic    string   `yaml:"trip_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// RemoteConfig describes an upstream reservation service (taxi, hotel).
// Base URLs come from configuration, never from code.
type RemoteConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout bounds every call to the remote service. A call that exceeds it is
// treated as a failure and triggers compensation.
func (r RemoteConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

type BookingConfig struct {
	FlightsCacheTTL   int `yaml:"flights_cache_ttl_seconds"`
	DayLockTTLSeconds int `yaml:"day_lock_ttl_seconds"`
}

func (b BookingConfig) CacheTTL() time.Duration {
	if b.FlightsCacheTTL <= 0 {
		return time.Minute
	}
	return time.Duration(b.FlightsCacheTTL) * time.Second
}

// LockTTL bounds how long a booking-day lock may outlive a crashed request.
func (b BookingConfig) LockTTL() time.Duration {
	if b.DayLockTTLSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.DayLockTTLSeconds) * time.Second
}

type WorkerConfig struct {
	ReconcileSweepMinutes int `yaml:"reconcile_sweep_minutes"`
}

func (w WorkerConfig) SweepInterval() time.Duration {
	if w.ReconcileSweepMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(w.ReconcileSweepMinutes) * time.Minute
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
