package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName        string
	Port           string
	Env            string
	Debug          bool
	ReservationTTL time.Duration
	// Add more fields as needed
}

// DefaultReservationTTL recovers automatically from crashed or abandoned
// checkout sessions without an explicit heartbeat.
const DefaultReservationTTL = 2 * time.Minute

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:        os.Getenv("APP_NAME"),
			Port:           os.Getenv("PORT"),
			Env:            os.Getenv("APP_ENV"),
			Debug:          os.Getenv("DEBUG") == "true",
			ReservationTTL: reservationTTLFromEnv(),
		}
	})
}

func reservationTTLFromEnv() time.Duration {
	if v := os.Getenv("RESERVATION_TTL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return DefaultReservationTTL
}

// ReservationTTL returns the configured hold TTL, falling back to the
// default when LoadAppConfig was not called (tests, one-off commands).
func ReservationTTL() time.Duration {
	if AppConfig != nil && AppConfig.ReservationTTL > 0 {
		return AppConfig.ReservationTTL
	}
	return DefaultReservationTTL
}
