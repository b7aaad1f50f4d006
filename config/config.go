package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"

	"salonassist/models"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTaskDB    int    `mapstructure:"REDIS_TASK_DB"`

	// Salon settings.
	SalonName            string `mapstructure:"SALON_NAME"`
	SalonTimezone        string `mapstructure:"SALON_TIMEZONE"`
	SlotGranularityMin   int    `mapstructure:"SLOT_GRANULARITY_MIN"`
	MaxAvailableResults  int    `mapstructure:"MAX_AVAILABLE_RESULTS"`
	ReminderLeadMinutes  int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	SessionCacheTTLMin   int    `mapstructure:"SESSION_CACHE_TTL_MIN"`

	// Weekly schedule, "HH:MM-HH:MM" or "closed" per weekday.
	HoursSunday    string `mapstructure:"HOURS_SUNDAY"`
	HoursMonday    string `mapstructure:"HOURS_MONDAY"`
	HoursTuesday   string `mapstructure:"HOURS_TUESDAY"`
	HoursWednesday string `mapstructure:"HOURS_WEDNESDAY"`
	HoursThursday  string `mapstructure:"HOURS_THURSDAY"`
	HoursFriday    string `mapstructure:"HOURS_FRIDAY"`
	HoursSaturday  string `mapstructure:"HOURS_SATURDAY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "salonassist")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_TASK_DB", 1)
	viper.SetDefault("SALON_NAME", "Elegant Nails Spa")
	viper.SetDefault("SALON_TIMEZONE", "Europe/Lisbon")
	viper.SetDefault("SLOT_GRANULARITY_MIN", 15)
	viper.SetDefault("MAX_AVAILABLE_RESULTS", 10)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 120)
	viper.SetDefault("SESSION_CACHE_TTL_MIN", 30)
	viper.SetDefault("HOURS_SUNDAY", "11:00-17:00")
	viper.SetDefault("HOURS_MONDAY", "09:00-19:00")
	viper.SetDefault("HOURS_TUESDAY", "09:00-19:00")
	viper.SetDefault("HOURS_WEDNESDAY", "09:00-19:00")
	viper.SetDefault("HOURS_THURSDAY", "09:00-19:00")
	viper.SetDefault("HOURS_FRIDAY", "09:00-19:00")
	viper.SetDefault("HOURS_SATURDAY", "09:00-19:00")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// OperatingHours assembles the weekly schedule from the configured
// per-weekday specs.
func OperatingHours() (models.OperatingHours, error) {
	specs := [7]string{
		AppConfig.HoursSunday,
		AppConfig.HoursMonday,
		AppConfig.HoursTuesday,
		AppConfig.HoursWednesday,
		AppConfig.HoursThursday,
		AppConfig.HoursFriday,
		AppConfig.HoursSaturday,
	}
	var hours models.OperatingHours
	for i, spec := range specs {
		day, err := models.ParseDayHours(spec)
		if err != nil {
			return models.OperatingHours{}, fmt.Errorf("weekday %s: %w", time.Weekday(i), err)
		}
		hours.Days[i] = day
	}
	hours.Granularity = AppConfig.SlotGranularityMin
	if hours.Granularity <= 0 {
		return models.OperatingHours{}, fmt.Errorf("slot granularity must be positive, got %d", hours.Granularity)
	}
	return hours, nil
}

// Timezone loads the salon's local timezone. "Day" is a business-hours
// concept, so session keys and schedules use this, not UTC.
func Timezone() (*time.Location, error) {
	loc, err := time.LoadLocation(AppConfig.SalonTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid SALON_TIMEZONE %q: %w", AppConfig.SalonTimezone, err)
	}
	return loc, nil
}
