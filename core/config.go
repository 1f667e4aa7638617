package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InsecureSecretKey is the development fallback for the token signing secret.
const InsecureSecretKey = "your-secret-key"

type (
	ServerConfig struct {
		Address         string
		DebugAddress    string
		Host            string
		AllowedOrigin   string
		ShutdownTimeout time.Duration
		StrictAuth      bool
		// OwnershipFirst makes student record reads check parent ownership before student existence.
		OwnershipFirst bool
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		InMemory      bool
	}

	Config struct {
		Env                string
		Debug              bool
		TestMode           bool
		AppName            string
		Build              string
		SecretKey          string
		JWTExpirationDelta time.Duration
		RollbarToken       string
		Server             ServerConfig
		Database           DatabaseConfig
	}
)

// Address returns the "host:port" the database listens on.
func (dc DatabaseConfig) Address() string {
	return net.JoinHostPort(dc.Host, strconv.Itoa(dc.Port))
}

// UsesInsecureSecret reports whether tokens are signed with the development fallback secret.
func (c *Config) UsesInsecureSecret() bool {
	return c.SecretKey == InsecureSecretKey
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "EduNotify")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", InsecureSecretKey)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.address", ":4000")
	v.SetDefault("server.debugAddress", ":4001")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.allowedOrigin", "http://localhost:5173")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.strictAuth", true)
	v.SetDefault("server.ownershipFirst", false)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "edunotify")
	v.SetDefault("database.user", "edunotify")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.inMemory", false)
}

// NewConfig loads the configuration of the current environment.
// ENV selects the environment: DEV (local; default), TEST, QA, PROD.
// Values are read from the environment, prefixed with the environment name
// (e.g. PROD_SECRETKEY, PROD_SERVER_ADDRESS), after loading config/.env.<env> if present.
func NewConfig() *Config {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	v := viper.New()
	setDefaults(v)
	if env == "TEST" {
		v.SetDefault("testMode", true)
		v.SetDefault("database.inMemory", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		Env:                env,
		Debug:              v.GetBool("debug"),
		TestMode:           v.GetBool("testMode"),
		AppName:            v.GetString("appName"),
		Build:              v.GetString("build"),
		SecretKey:          v.GetString("secretKey"),
		JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		RollbarToken:       v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			DebugAddress:    v.GetString("server.debugAddress"),
			Host:            v.GetString("server.host"),
			AllowedOrigin:   v.GetString("server.allowedOrigin"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			StrictAuth:      v.GetBool("server.strictAuth"),
			OwnershipFirst:  v.GetBool("server.ownershipFirst"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
			InMemory:      v.GetBool("database.inMemory"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests, without touching the environment.
func NewTestConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{
		Env:                "TEST",
		Debug:              false,
		TestMode:           true,
		AppName:            v.GetString("appName"),
		Build:              "test",
		SecretKey:          "test-secret-key",
		JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		Server: ServerConfig{
			Address:         ":0",
			AllowedOrigin:   v.GetString("server.allowedOrigin"),
			ShutdownTimeout: time.Second,
			StrictAuth:      true,
		},
		Database: DatabaseConfig{InMemory: true},
	}
}
