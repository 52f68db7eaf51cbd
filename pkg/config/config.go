package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FITNESSPRO_APP_ENV" required:"true"`
	Port         string `envconfig:"FITNESSPRO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FITNESSPRO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FITNESSPRO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FITNESSPRO_DB_DSN"`
	Driver string `envconfig:"FITNESSPRO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FITNESSPRO_DB_HOST"`
	LegacyPort     int    `envconfig:"FITNESSPRO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FITNESSPRO_DB_USER"`
	LegacyPassword string `envconfig:"FITNESSPRO_DB_PASSWORD"`
	LegacyName     string `envconfig:"FITNESSPRO_DB_NAME"`
	LegacySSLMode  string `envconfig:"FITNESSPRO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FITNESSPRO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FITNESSPRO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FITNESSPRO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FITNESSPRO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FITNESSPRO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FITNESSPRO_REDIS_ADDR"`
	Password     string        `envconfig:"FITNESSPRO_REDIS_PASSWORD"`
	DB           int           `envconfig:"FITNESSPRO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FITNESSPRO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FITNESSPRO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FITNESSPRO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FITNESSPRO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FITNESSPRO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FITNESSPRO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FITNESSPRO_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FITNESSPRO_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"FITNESSPRO_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FITNESSPRO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FITNESSPRO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FITNESSPRO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FITNESSPRO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FITNESSPRO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"FITNESSPRO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"FITNESSPRO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"FITNESSPRO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite     bool   `envconfig:"FITNESSPRO_USE_SQLITE" default:"false"`
	AutoMigrate   bool   `envconfig:"FITNESSPRO_AUTO_MIGRATE" default:"false"`
	GCSAccessMode string `envconfig:"FITNESSPRO_GCS_ACCESS_MODE" default:"public"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"FITNESSPRO_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"FITNESSPRO_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"FITNESSPRO_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	AvatarBucket   string `envconfig:"FITNESSPRO_GCS_AVATAR_BUCKET" default:"avatars"`
	ExerciseBucket string `envconfig:"FITNESSPRO_GCS_EXERCISE_BUCKET" default:"exercise-videos"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"FITNESSPRO_MAX_UPLOAD_MB" default:"200"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
