package utils

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var DefaultCORSOrigins = []string{
	"http://localhost:4001",
	"https://surplus-reduction-community.web.app",
	"https://surplus-reduction-community.firebaseapp.com",
}

type Config struct {
	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER" validate:"oneof=mongo postgres"`
	DBUser     string `yaml:"DB_USER"`
	DBPassword string `yaml:"DB_PASS"`
	DBHost     string `yaml:"DB_HOST"`
	DBPort     string `yaml:"DB_PORT"`
	DBName     string `yaml:"DB_NAME" validate:"required"`
	MongoURI   string `yaml:"MONGO_URI"`

	// Token signing
	AccessTokenSecret string `yaml:"ACCESS_TOKEN_SECRET" validate:"required"`

	// Server
	Port        string   `yaml:"PORT" validate:"required"`
	NodeEnv     string   `yaml:"NODE_ENV"`
	CORSOrigins []string `yaml:"CORS_ORIGINS"`
	LogDir      string   `yaml:"LOG_DIR"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

// IsProduction reports whether cookies must be issued cross-site.
func (c Config) IsProduction() bool {
	return c.NodeEnv == "production"
}

func defaultConfig() Config {
	return Config{
		DBDriver:    "mongo",
		DBName:      "SurplusReductionCommunity",
		Port:        "3000",
		CORSOrigins: DefaultCORSOrigins,
		LogDir:      "./logs",
	}
}

// LoadConfig reads config.yaml and .env from the working directory, then
// lets process environment variables override both. Missing files are not
// an error.
func LoadConfig() Config {
	return LoadConfigFrom("config.yaml", ".env")
}

func LoadConfigFrom(yamlPath, envPath string) Config {
	cfg := defaultConfig()

	file, err := os.ReadFile(yamlPath)
	if err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			log.Warnf("error parsing YAML file %s: %v", yamlPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Warnf("error reading YAML file %s: %v", yamlPath, err)
	}

	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		log.Warnf("error loading env file %s: %v", envPath, err)
	}

	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"DB_DRIVER":           &cfg.DBDriver,
		"DB_USER":             &cfg.DBUser,
		"DB_PASS":             &cfg.DBPassword,
		"DB_HOST":             &cfg.DBHost,
		"DB_PORT":             &cfg.DBPort,
		"DB_NAME":             &cfg.DBName,
		"MONGO_URI":           &cfg.MongoURI,
		"ACCESS_TOKEN_SECRET": &cfg.AccessTokenSecret,
		"PORT":                &cfg.Port,
		"NODE_ENV":            &cfg.NodeEnv,
		"LOG_DIR":             &cfg.LogDir,
		"APP_URL":             &cfg.AppURL,
		"SMTP_HOST":           &cfg.SMTPHost,
		"SMTP_PORT":           &cfg.SMTPPort,
		"SMTP_SENDER_NAME":    &cfg.SMTPSenderName,
		"SMTP_AUTH_EMAIL":     &cfg.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":  &cfg.SMTPAuthPassword,
		"AWS_S3_BUCKET":       &cfg.AWSS3Bucket,
		"AWS_S3_REGION":       &cfg.AWSS3Region,
		"AWS_ACCESS_KEY":      &cfg.AWSAccessKey,
		"AWS_SECRET_KEY":      &cfg.AWSSecretKey,
	}
	for key, field := range overrides {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*field = value
		}
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}
}
