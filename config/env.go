package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	defaultMongoURI     = "mongodb://localhost:27017"
	defaultDatabaseName = "madad"
	defaultRedisAddr    = "localhost:6379"
	defaultJWTSecret    = "dev_secret_change_me"
	defaultJWTAlgo      = "HS256"
	defaultTokenExpiry  = "43200" // minutes — 30 days
	defaultAppPort      = "8000"
	defaultAppEnv       = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Real environment variables
// take precedence over both files.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"DATABASE_URL":                defaultMongoURI,
		"DATABASE_NAME":               defaultDatabaseName,
		"REDIS_ADDR":                  defaultRedisAddr,
		"REDIS_PASSWORD":              "",
		"JWT_SECRET":                  defaultJWTSecret,
		"JWT_ALGO":                    defaultJWTAlgo,
		"ACCESS_TOKEN_EXPIRE_MINUTES": defaultTokenExpiry,
		"APP_PORT":                    defaultAppPort,
		"APP_ENV":                     defaultAppEnv,
	}
}

// MongoURI returns the MongoDB connection string.
func MongoURI() string {
	_ = Load()
	return get("DATABASE_URL", defaultMongoURI)
}

// MongoURISet reports whether a connection string was explicitly configured,
// as opposed to the localhost fallback. Used by the /test diagnostic.
func MongoURISet() bool {
	_ = Load()
	if os.Getenv("DATABASE_URL") != "" {
		return true
	}
	mu.RLock()
	defer mu.RUnlock()
	return strings.TrimSpace(values["DATABASE_URL"]) != "" &&
		values["DATABASE_URL"] != defaultMongoURI
}

// DatabaseName returns the MongoDB database name.
func DatabaseName() string {
	_ = Load()
	return get("DATABASE_NAME", defaultDatabaseName)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

// JWTAlgo returns the token signing algorithm (HS256, HS384 or HS512).
func JWTAlgo() string {
	_ = Load()
	algo := strings.ToUpper(get("JWT_ALGO", defaultJWTAlgo))
	switch algo {
	case "HS256", "HS384", "HS512":
		return algo
	default:
		return defaultJWTAlgo
	}
}

// TokenLifetimeMinutes returns the access-token lifetime in minutes.
func TokenLifetimeMinutes() int {
	_ = Load()
	n, err := strconv.Atoi(get("ACCESS_TOKEN_EXPIRE_MINUTES", defaultTokenExpiry))
	if err != nil || n <= 0 {
		n, _ = strconv.Atoi(defaultTokenExpiry)
	}
	return n
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	// Real environment wins over both files.
	for key := range loaded {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			loaded[key] = v
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
