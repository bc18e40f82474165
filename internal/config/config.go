package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 8080
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "techblog"
	defaultDBCharset  = "utf8mb4"
	defaultMongoURI   = "mongodb://localhost:27017"
	defaultMongoDB    = "techblog"
	defaultCommentsCollection = "comments"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	DSN            string         `yaml:"dsn"` // MySQL DSN; overrides Database when set
	Database       DatabaseConfig `yaml:"database"`
	Mongo          MongoConfig    `yaml:"mongo"`
	RedisURL       string         `yaml:"redis_url"`
	JWTSecret      string         `yaml:"jwt_secret"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	AWS            AWSConfig      `yaml:"aws"`
}

// DatabaseConfig holds MySQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// MongoConfig holds the comment document store connection parameters.
type MongoConfig struct {
	URI                string `yaml:"uri"`
	Database           string `yaml:"database"`
	CommentsCollection string `yaml:"comments_collection"`
}

// AWSConfig holds settings for the analytics stream and image bucket.
type AWSConfig struct {
	Region         string `yaml:"region"`
	FirehoseStream string `yaml:"firehose_stream"`
	S3Bucket       string `yaml:"s3_bucket"`
	// Endpoint overrides the AWS endpoint (localstack in development).
	Endpoint string `yaml:"endpoint"`
}

// Load reads the YAML config file, applies defaults and env overrides.
// A missing file is not an error; defaults plus env vars still apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

// MySQLDSN assembles the DSN from parts unless an explicit one is configured.
func (c *AppConfig) MySQLDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.Charset)
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Password == "" {
		c.Database.Password = defaultDBPassword
	}
	if c.Database.Name == "" {
		c.Database.Name = defaultDBName
	}
	if c.Database.Charset == "" {
		c.Database.Charset = defaultDBCharset
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = defaultMongoURI
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = defaultMongoDB
	}
	if c.Mongo.CommentsCollection == "" {
		c.Mongo.CommentsCollection = defaultCommentsCollection
	}
}

func (c *AppConfig) applyEnvOverrides() {
	if v := os.Getenv("TECHBLOG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("TECHBLOG_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("TECHBLOG_DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("TECHBLOG_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("TECHBLOG_REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("TECHBLOG_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" && c.AWS.Region == "" {
		c.AWS.Region = v
	}
	if v := os.Getenv("TECHBLOG_FIREHOSE_STREAM"); v != "" {
		c.AWS.FirehoseStream = v
	}
	if v := os.Getenv("TECHBLOG_S3_BUCKET"); v != "" {
		c.AWS.S3Bucket = v
	}
}
