package config

import (
	"os"
	"sync"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda        bool
	FunctionName    string
	FunctionVersion string
	Region          string
	MemoryMB        int
	Stage           string
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = detectServerlessConfig()
	})
	return serverlessConfig
}

func detectServerlessConfig() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:        isRunningInLambda(),
		FunctionName:    os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		FunctionVersion: os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		Region:          GetEnv("AWS_REGION", os.Getenv("AWS_DEFAULT_REGION")),
		MemoryMB:        GetEnvAsInt("AWS_LAMBDA_FUNCTION_MEMORY_SIZE", 0),
		Stage:           GetEnv("STAGE", "dev"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsLambda
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment
func AdaptConfigForServerless(config *Config) *Config {
	return adaptConfig(config, GetServerlessConfig())
}

func adaptConfig(config *Config, sc *ServerlessConfig) *Config {
	if !sc.IsLambda {
		return config
	}

	// CloudWatch Logs Insights only indexes structured fields
	config.Logging.Format = "json"
	if sc.Stage != "" {
		config.Stage = sc.Stage
	}

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(config), nil
}
