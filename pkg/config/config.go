package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Assessment  AssessmentConfig
	AzureOpenAI AzureOpenAIConfig
	Assistant   AssistantConfig
	Logger      LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type AssessmentConfig struct {
	DocumentPath string
}

type AzureOpenAIConfig struct {
	Endpoint            string
	APIKey              string
	APIVersion          string
	ChatDeployment      string
	EmbeddingDeployment string
}

type AssistantConfig struct {
	SystemPrompt   string
	ContextPreface string
	APIBaseURL     string
	FunctionsHost  string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// A missing .env file is fine, environment variables are used directly
	// (useful for Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("APP_ENV", "production"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Assessment: AssessmentConfig{
			DocumentPath: getEnv("ASSESSMENT_DOCUMENT_PATH", "engineering_metrics_benchmark_template.json"),
		},
		AzureOpenAI: AzureOpenAIConfig{
			Endpoint:            getEnv("AZURE_OPENAI_ENDPOINT", ""),
			APIKey:              getEnv("AZURE_OPENAI_API_KEY", ""),
			APIVersion:          getEnv("AZURE_OPENAI_API_VERSION", "2023-05-15"),
			ChatDeployment:      getEnv("AZURE_OPENAI_CHAT_DEPLOYMENT", ""),
			EmbeddingDeployment: getEnv("AZURE_OPENAI_EMBEDDING_DEPLOYMENT", ""),
		},
		Assistant: AssistantConfig{
			SystemPrompt:   getEnv("ASSISTANT_SYSTEM_PROMPT", ""),
			ContextPreface: getEnv("ASSISTANT_CONTEXT_PREFACE", ""),
			APIBaseURL:     getEnv("API_BASE_URL", ""),
			FunctionsHost:  getEnv("AZURE_FUNCTIONS_HOST", "http://localhost:7071"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
