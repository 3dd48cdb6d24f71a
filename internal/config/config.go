package config

import (
	"fmt"
	"time"

	"github.com/itinerary-engine/internal/domain"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	SuggestionCacheTTL time.Duration
	BudgetCacheTTL     time.Duration
}

type LogConfig struct {
	Level string
}

// EngineConfig carries the planner constants: the fallback fare table
// used when the rate store has no row, the assumed travel speed and the
// hour the first leg of every day departs.
type EngineConfig struct {
	MotorBaseFare  float64
	MotorRatePerKm float64
	CarBaseFare    float64
	CarRatePerKm   float64
	AvgSpeedKmh    float64
	DayStart       string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SuggestionCacheTTL: time.Duration(viper.GetInt("SUGGESTION_CACHE_TTL")) * time.Second,
			BudgetCacheTTL:     time.Duration(viper.GetInt("BUDGET_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Engine: EngineConfig{
			MotorBaseFare:  viper.GetFloat64("ENGINE_MOTOR_BASE_FARE"),
			MotorRatePerKm: viper.GetFloat64("ENGINE_MOTOR_RATE_PER_KM"),
			CarBaseFare:    viper.GetFloat64("ENGINE_CAR_BASE_FARE"),
			CarRatePerKm:   viper.GetFloat64("ENGINE_CAR_RATE_PER_KM"),
			AvgSpeedKmh:    viper.GetFloat64("ENGINE_AVG_SPEED_KMH"),
			DayStart:       viper.GetString("ENGINE_DAY_START"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.SuggestionCacheTTL == 0 {
		cfg.Cache.SuggestionCacheTTL = 300 * time.Second
	}
	if cfg.Cache.BudgetCacheTTL == 0 {
		cfg.Cache.BudgetCacheTTL = 60 * time.Second
	}
	if cfg.Engine.MotorBaseFare == 0 {
		cfg.Engine.MotorBaseFare = 5000
	}
	if cfg.Engine.MotorRatePerKm == 0 {
		cfg.Engine.MotorRatePerKm = 2500
	}
	if cfg.Engine.CarBaseFare == 0 {
		cfg.Engine.CarBaseFare = 10000
	}
	if cfg.Engine.CarRatePerKm == 0 {
		cfg.Engine.CarRatePerKm = 4000
	}
	if cfg.Engine.AvgSpeedKmh == 0 {
		cfg.Engine.AvgSpeedKmh = 40
	}
	if cfg.Engine.DayStart == "" {
		cfg.Engine.DayStart = "08:00"
	}

	return cfg, nil
}

// FallbackFareTable builds the explicit default-rate table handed to the
// transport pricer.
func (e *EngineConfig) FallbackFareTable() domain.FareTable {
	return domain.FareTable{
		domain.TransportMotor: {
			Type:      domain.TransportMotor,
			BaseFare:  e.MotorBaseFare,
			RatePerKm: e.MotorRatePerKm,
		},
		domain.TransportCar: {
			Type:      domain.TransportCar,
			BaseFare:  e.CarBaseFare,
			RatePerKm: e.CarRatePerKm,
		},
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
