package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers []string
	KafkaGroupID string
	AuditTopic   string

	// Codebooks
	ICD10CodesPath string
	CPTCodesPath   string

	// Remote inference endpoint; empty means the local rule engine serves
	// all predictions.
	InferenceEndpoint string
	InferenceTimeout  time.Duration
	InferenceRetries  int

	// OIDC (optional; auth disabled when issuer is empty)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string

	// Caching and retention
	PredictionCacheTTL time.Duration
	RecordRetention    time.Duration

	// Gateway
	RateLimitRPS   int
	RateLimitBurst int

	Preprocessing PreprocessingConfig
	Prediction    PredictionConfig
	NER           NERConfig
}

type PreprocessingConfig struct {
	Lowercase           bool `yaml:"lowercase"`
	RemovePunctuation   bool `yaml:"remove_punctuation"`
	ExpandAbbreviations bool `yaml:"expand_abbreviations"`
}

type PredictionConfig struct {
	Threshold float64 `yaml:"threshold"`
	TopK      int     `yaml:"top_k"`
	CodeType  string  `yaml:"code_type"`
}

type NERConfig struct {
	Labels []string `yaml:"labels"`
}

type fileConfig struct {
	Preprocessing *PreprocessingConfig `yaml:"preprocessing"`
	Prediction    *PredictionConfig    `yaml:"prediction"`
	NER           *NERConfig           `yaml:"ner"`
	Paths         struct {
		ICD10Codes string `yaml:"icd10_codes"`
		CPTCodes   string `yaml:"cpt_codes"`
	} `yaml:"paths"`
}

func Load() *Config {
	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "medcodes"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "medcodes123"),
		PostgresDB:       getEnv("POSTGRES_DB", "medcodes"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "coding-service"),
		AuditTopic:   getEnv("AUDIT_TOPIC", "prediction-events"),

		ICD10CodesPath: getEnv("ICD10_CODES_PATH", "data/icd10_codes.csv"),
		CPTCodesPath:   getEnv("CPT_CODES_PATH", "data/cpt_codes.csv"),

		InferenceEndpoint: getEnv("INFERENCE_ENDPOINT", ""),
		InferenceTimeout:  getDuration("INFERENCE_TIMEOUT", 10*time.Second),
		InferenceRetries:  getIntEnv("INFERENCE_RETRIES", 3),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),

		PredictionCacheTTL: getDuration("PREDICTION_CACHE_TTL", 5*time.Minute),
		RecordRetention:    getDuration("RECORD_RETENTION", 30*24*time.Hour),

		RateLimitRPS:   getIntEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		Preprocessing: PreprocessingConfig{
			Lowercase:           getBoolEnv("PREPROCESS_LOWERCASE", true),
			RemovePunctuation:   getBoolEnv("PREPROCESS_REMOVE_PUNCTUATION", false),
			ExpandAbbreviations: getBoolEnv("PREPROCESS_EXPAND_ABBREVIATIONS", true),
		},
		Prediction: PredictionConfig{
			Threshold: getFloatEnv("PREDICTION_THRESHOLD", 0.5),
			TopK:      getIntEnv("PREDICTION_TOP_K", 5),
			CodeType:  getEnv("PREDICTION_CODE_TYPE", "both"),
		},
		NER: NERConfig{
			Labels: getStringSliceEnv("NER_LABELS", []string{
				"DIAGNOSIS", "PROCEDURE", "MEDICATION", "ANATOMY", "SEVERITY", "DURATION",
			}),
		},
	}

	if path := getEnv("CONFIG_PATH", ""); path != "" {
		cfg.applyFile(path)
	}

	return cfg
}

// applyFile overlays values from an optional YAML config file. A missing or
// malformed file leaves the env-derived config untouched.
func (c *Config) applyFile(path string) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return
	}
	var fc fileConfig
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return
	}
	if fc.Preprocessing != nil {
		c.Preprocessing = *fc.Preprocessing
	}
	if fc.Prediction != nil {
		if fc.Prediction.CodeType == "" {
			fc.Prediction.CodeType = c.Prediction.CodeType
		}
		c.Prediction = *fc.Prediction
	}
	if fc.NER != nil && len(fc.NER.Labels) > 0 {
		c.NER = *fc.NER
	}
	if fc.Paths.ICD10Codes != "" {
		c.ICD10CodesPath = fc.Paths.ICD10Codes
	}
	if fc.Paths.CPTCodes != "" {
		c.CPTCodesPath = fc.Paths.CPTCodes
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
