package api

import (
	"strings"
	"sync"
	"time"

	"github.com/alex-pricope/simple-polls/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
	PollsConfig
	ThrottleConfig
}

type StorageConfig struct {
	Driver                 string
	DSN                    string
	LoginAttemptsBackend   string
	TableNameLoginAttempts string
	RedisURL               string
}

type ServerConfig struct {
	Port         int
	Mode         string
	AllowOrigins []string
}

type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	CookieName   string
	SecureCookie bool
}

type PollsConfig struct {
	MaxChoices int
	IndexSize  int
}

type ThrottleConfig struct {
	MaxFailures int
	Window      time.Duration
}

var settingsOnce sync.Once

// SetupViper points viper at config.yaml in the working directory and lets
// environment variables override any key (storage.dsn -> STORAGE_DSN).
func SetupViper() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func ReadConfig() *Config {
	var conf = &Config{
		StorageConfig: StorageConfig{
			Driver:                 getStringOrDefault("storage.driver", "sqlite"),
			DSN:                    getStringOrDefault("storage.dsn", "polls.db"),
			LoginAttemptsBackend:   getStringOrDefault("storage.loginAttempts", "sql"),
			TableNameLoginAttempts: getStringOrDefault("storage.TableNameLoginAttempts", "LoginAttempts"),
			RedisURL:               getString("redis.url"),
		},
		ServerConfig: ServerConfig{
			Port:         getIntOrDefault("server.port", 8080),
			Mode:         getStringOrDefault("server.mode", "debug"),
			AllowOrigins: getStringSliceOrDefault("cors.allowOrigins", []string{"http://localhost:3000"}),
		},
		AuthConfig: AuthConfig{
			JWTSecret:    getString("auth.jwtSecret"),
			TokenTTL:     getDurationOrDefault("auth.tokenTTL", 24*time.Hour),
			CookieName:   getStringOrDefault("auth.cookieName", "sessionid"),
			SecureCookie: getBoolOrDefault("auth.secureCookie", false),
		},
		PollsConfig: PollsConfig{
			MaxChoices: getIntOrDefault("polls.maxChoices", 10),
			IndexSize:  getIntOrDefault("polls.indexSize", 5),
		},
		ThrottleConfig: ThrottleConfig{
			MaxFailures: getIntOrDefault("throttle.maxFailures", 5),
			Window:      getDurationOrDefault("throttle.window", 5*time.Minute),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getString(name string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return ""
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(name string, def time.Duration) time.Duration {
	if viper.IsSet(name) {
		v := viper.GetDuration(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringSliceOrDefault(name string, def []string) []string {
	if viper.IsSet(name) {
		v := viper.GetStringSlice(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
