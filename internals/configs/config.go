package configs

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// AppConfig is loaded once at startup and handed to the packages that need it.
type AppConfig struct {
	Port        string
	Environment string
	LogLevel    string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	DBSimpleProtocol bool

	// staff identity: firebase | google | jwt
	IdentityProvider    string
	FirebaseCredentials string
	GoogleClientID      string
	JWTSecret           string
	ParentTokenTTL      time.Duration

	OSSEndpoint      string
	OSSAccessKey     string
	OSSSecretKey     string
	OSSSecurityToken string
	OSSBucket        string
	OSSPublicBase    string

	RedisAddr     string
	RedisPassword string

	ReaperSchedule      string
	ReaperRetentionDays int
	ReaperDryRun        bool

	SeedAdminInvite string
	AllowedOrigins  []string
}

var Config AppConfig

// =======================
// ENV LOADER
// =======================
func LoadEnv() AppConfig {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			Log.Info("⚠️ no .env file found, using system environment")
		} else {
			Log.Info("✅ .env file loaded")
		}
	} else {
		Log.Info("🚀 running on Railway, using system environment")
	}

	Config = AppConfig{
		Port:        GetEnv("PORT", "3000"),
		Environment: GetEnv("APP_ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),

		DBUser:     GetEnv("DB_USER"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		DBSimpleProtocol: GetEnvBool("DB_SIMPLE_PROTOCOL", false),

		IdentityProvider:    strings.ToLower(GetEnv("IDENTITY_PROVIDER", "firebase")),
		FirebaseCredentials: GetEnv("FIREBASE_CREDENTIALS_FILE"),
		GoogleClientID:      GetEnv("GOOGLE_CLIENT_ID"),
		JWTSecret:           GetEnv("JWT_SECRET"),
		ParentTokenTTL:      GetEnvDuration("PARENT_TOKEN_TTL", 24*time.Hour),

		OSSEndpoint:      GetEnv("ALI_OSS_ENDPOINT"),
		OSSAccessKey:     GetEnv("ALI_OSS_ACCESS_KEY"),
		OSSSecretKey:     GetEnv("ALI_OSS_SECRET_KEY"),
		OSSSecurityToken: GetEnv("ALI_OSS_SECURITY_TOKEN"),
		OSSBucket:        GetEnv("ALI_OSS_BUCKET"),
		OSSPublicBase:    GetEnv("ALI_OSS_PUBLIC_BASE"),

		RedisAddr:     GetEnv("REDIS_ADDR"),
		RedisPassword: GetEnv("REDIS_PASSWORD"),

		ReaperSchedule:      GetEnv("REAPER_CRON_SCHEDULE", "15 2 * * *"),
		ReaperRetentionDays: GetEnvInt("REAPER_RETENTION_DAYS", 7),
		ReaperDryRun:        GetEnvBool("DRY_RUN", false),

		SeedAdminInvite: strings.ToLower(strings.TrimSpace(GetEnv("SEED_ADMIN_INVITE"))),
		AllowedOrigins:  splitCSV(GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	if Config.JWTSecret == "" {
		Log.Warn("❌ JWT_SECRET is not set, parent login is disabled")
	}
	if Config.IdentityProvider == "google" && Config.GoogleClientID == "" {
		Log.Warn("❌ GOOGLE_CLIENT_ID is not set")
	}
	return Config
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if Log.IsLevelEnabled(debugLevel) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	n := *l
	n.LogLevel = level
	return &n
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		Log.Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		Log.Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		Log.Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := Log.WithFields(map[string]interface{}{
		"file":    utils.FileWithLineNum(),
		"elapsed": elapsed.String(),
		"rows":    rows,
	})

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !isRecordNotFound(err):
		entry.WithError(err).Errorf("[ERROR] %s", sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		entry.Warnf("[SLOW SQL] %s", sql)
	case l.LogLevel >= gormLogger.Info:
		entry.Debugf("[QUERY] %s", sql)
	}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gormLogger.ErrRecordNotFound)
}
