package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "taskhive-backend/internal/util/env"
	"taskhive-backend/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting   bool
	DatabaseDsn string            `env:"DATABASE_DSN" required:"true"`
	MongoUri    string            `env:"MONGO_URI"    required:"true"`
	EnvMode     env_utils.EnvMode `env:"ENV_MODE"     required:"true"`

	HTTPPort  string `env:"HTTP_PORT"  envDefault:"5000"`
	JwtSecret string `env:"JWT_SECRET" required:"true"`

	// Attachment file storage. "local" keeps bytes under UploadsFolder,
	// "s3" stores them in a MinIO/S3 bucket.
	FileStorageType string `env:"FILE_STORAGE" envDefault:"local"`
	UploadsFolder   string

	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3UseSSL    bool   `env:"S3_USE_SSL" envDefault:"false"`

	// When true, deleting a workspace also deletes its tasks and their
	// stored attachment files. Off by default: notifications and activity
	// log entries are retained either way.
	CascadeWorkspaceDelete bool `env:"CASCADE_WORKSPACE_DELETE" envDefault:"false"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Loaded .env", "path", path)
			break
		}
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}
	if env.MongoUri == "" {
		log.Error("MONGO_URI is empty")
		os.Exit(1)
	}
	if env.JwtSecret == "" {
		log.Error("JWT_SECRET is empty")
		os.Exit(1)
	}
	if env.EnvMode != env_utils.EnvModeDevelopment &&
		env.EnvMode != env_utils.EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}

	if env.HTTPPort == "" {
		env.HTTPPort = "5000"
	}
	if env.FileStorageType == "" {
		env.FileStorageType = "local"
	}

	if env.FileStorageType != "local" && env.FileStorageType != "s3" {
		log.Error("FILE_STORAGE is invalid", "storage", env.FileStorageType)
		os.Exit(1)
	}

	if env.FileStorageType == "s3" {
		if env.S3Endpoint == "" || env.S3AccessKey == "" ||
			env.S3SecretKey == "" || env.S3Bucket == "" {
			log.Error("S3 storage selected but S3 settings are incomplete")
			os.Exit(1)
		}
	}

	env.UploadsFolder = filepath.Join(backendRoot, "uploads")

	log.Info("Environment variables loaded successfully!", "mode", env.EnvMode)
}
