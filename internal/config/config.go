package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBBinaryParameters         bool
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	InternalJobToken           string
	Providers                  ProviderConfig
	SchedulerEnabled           bool
	SchedulerTimezone          string
	SchedulerNightlySpec       string
	SchedulerWeeklySpec        string
	JobGameLeagues             []string
	JobContinueOnAthleteError  bool
	JobSyncGameStats           bool
	JobBackfillSeasons         int
	JobWorkers                 int
	CatalogCacheTTL            time.Duration
	LogLevel                   logging.Level
}

// ProviderConfig holds the shared pacing settings plus per-league endpoints.
type ProviderConfig struct {
	BaseURLs              map[string]string
	Tokens                map[string]string
	Timeout               time.Duration
	MinInterval           time.Duration
	Retries               int
	BackoffFactor         float64
	CacheTTL              time.Duration
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int
}

var providerLeagues = []string{"nba", "nfl", "mlb", "nhl"}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	providers, err := loadProviders()
	if err != nil {
		return Config{}, err
	}

	schedulerEnabled, err := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULER_ENABLED: %w", err)
	}
	schedulerTimezone := strings.TrimSpace(getEnv("SCHEDULER_TIMEZONE", "UTC"))
	if _, err := time.LoadLocation(schedulerTimezone); err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULER_TIMEZONE: %w", err)
	}

	jobGameLeagues := splitCSV(strings.ToLower(getEnv("JOB_GAME_LEAGUES", "nba,nhl")))
	for _, league := range jobGameLeagues {
		if !knownLeague(league) {
			return Config{}, fmt.Errorf("invalid JOB_GAME_LEAGUES item %q", league)
		}
	}
	jobContinueOnAthleteError, err := strconv.ParseBool(getEnv("JOB_CONTINUE_ON_ATHLETE_ERROR", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_CONTINUE_ON_ATHLETE_ERROR: %w", err)
	}
	jobSyncGameStats, err := strconv.ParseBool(getEnv("JOB_SYNC_GAME_STATS", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_SYNC_GAME_STATS: %w", err)
	}
	jobBackfillSeasons, err := getEnvAsInt("JOB_BACKFILL_SEASONS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_BACKFILL_SEASONS: %w", err)
	}
	if jobBackfillSeasons < 1 || jobBackfillSeasons > 50 {
		return Config{}, fmt.Errorf("JOB_BACKFILL_SEASONS must be between 1 and 50")
	}
	jobWorkers, err := getEnvAsInt("JOB_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_WORKERS: %w", err)
	}
	if jobWorkers < 1 {
		return Config{}, fmt.Errorf("JOB_WORKERS must be >= 1")
	}

	catalogCacheTTL, err := time.ParseDuration(getEnv("CATALOG_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CACHE_TTL: %w", err)
	}
	if catalogCacheTTL < 0 {
		return Config{}, fmt.Errorf("CATALOG_CACHE_TTL must be >= 0")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "athlete-hub-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", getEnv("DATABASE_URL", ""))),
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		BetterStackEnabled:         betterStackEnabled,
		BetterStackEndpoint:        betterStackEndpoint,
		BetterStackToken:           strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:         betterStackTimeout,
		BetterStackMinLevel:        parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		Providers:                  providers,
		SchedulerEnabled:           schedulerEnabled,
		SchedulerTimezone:          schedulerTimezone,
		SchedulerNightlySpec:       strings.TrimSpace(getEnv("SCHEDULER_NIGHTLY_SPEC", "0 2 * * *")),
		SchedulerWeeklySpec:        strings.TrimSpace(getEnv("SCHEDULER_WEEKLY_SPEC", "0 3 * * 0")),
		JobGameLeagues:             jobGameLeagues,
		JobContinueOnAthleteError:  jobContinueOnAthleteError,
		JobSyncGameStats:           jobSyncGameStats,
		JobBackfillSeasons:         jobBackfillSeasons,
		JobWorkers:                 jobWorkers,
		CatalogCacheTTL:            catalogCacheTTL,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if appEnv == EnvProd && cfg.InternalJobToken == "" {
		return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when APP_ENV=prod")
	}

	dbBinaryParameters, err := strconv.ParseBool(getEnv("DB_BINARY_PARAMETERS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_BINARY_PARAMETERS: %w", err)
	}
	cfg.DBBinaryParameters = dbBinaryParameters

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func loadProviders() (ProviderConfig, error) {
	out := ProviderConfig{
		BaseURLs: make(map[string]string, len(providerLeagues)),
		Tokens:   make(map[string]string, len(providerLeagues)),
	}
	for _, league := range providerLeagues {
		prefix := strings.ToUpper(league)
		if baseURL := strings.TrimSpace(getEnv(prefix+"_API_BASE_URL", "")); baseURL != "" {
			out.BaseURLs[league] = strings.TrimRight(baseURL, "/")
		}
		if token := strings.TrimSpace(getEnv(prefix+"_API_TOKEN", "")); token != "" {
			out.Tokens[league] = token
		}
	}

	var err error
	out.Timeout, err = time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "10s"))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse PROVIDER_TIMEOUT: %w", err)
	}
	if out.Timeout <= 0 {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_TIMEOUT must be > 0")
	}
	out.MinInterval, err = time.ParseDuration(getEnv("PROVIDER_MIN_INTERVAL", "1s"))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse PROVIDER_MIN_INTERVAL: %w", err)
	}
	if out.MinInterval < 0 {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_MIN_INTERVAL must be >= 0")
	}
	out.Retries, err = getEnvAsInt("PROVIDER_RETRIES", 3)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse PROVIDER_RETRIES: %w", err)
	}
	if out.Retries < 1 {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_RETRIES must be >= 1")
	}
	out.BackoffFactor, err = strconv.ParseFloat(strings.TrimSpace(getEnv("PROVIDER_BACKOFF_FACTOR", "1.0")), 64)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse PROVIDER_BACKOFF_FACTOR: %w", err)
	}
	if out.BackoffFactor < 0 {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_BACKOFF_FACTOR must be >= 0")
	}
	out.CacheTTL, err = time.ParseDuration(getEnv("PROVIDER_CACHE_TTL", "1h"))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse PROVIDER_CACHE_TTL: %w", err)
	}
	if out.CacheTTL <= 0 {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_CACHE_TTL must be > 0")
	}

	out.CircuitEnabled, err = strconv.ParseBool(getEnv("PROVIDER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse PROVIDER_CIRCUIT_ENABLED: %w", err)
	}
	out.CircuitFailureCount, err = getEnvAsInt("PROVIDER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse PROVIDER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if out.CircuitFailureCount < 1 {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	out.CircuitOpenTimeout, err = time.ParseDuration(getEnv("PROVIDER_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse PROVIDER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if out.CircuitOpenTimeout <= 0 {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	out.CircuitHalfOpenMaxReq, err = getEnvAsInt("PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if out.CircuitHalfOpenMaxReq < 1 {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	return out, nil
}

func knownLeague(v string) bool {
	for _, league := range providerLeagues {
		if league == v {
			return true
		}
	}
	return false
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
