package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	Assistant AssistantConfig
	AI        AIConfig
	Session   SessionConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	assistant, err := loadAssistantConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Assistant: assistant, AI: ai, Session: session}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AssistantConfig 描述外部助理网关相关配置。
type AssistantConfig struct {
	AgentURL     string
	APIKey       string
	Timeout      time.Duration
	ProbeTimeout time.Duration
}

// Configured 表示是否提供了外部网关地址。
func (c AssistantConfig) Configured() bool {
	return c.AgentURL != ""
}

func loadAssistantConfig() (AssistantConfig, error) {
	timeout, err := parseOptionalIntEnv("WXO_TIMEOUT")
	if err != nil {
		return AssistantConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	probeTimeout, err := parseOptionalIntEnv("WXO_PROBE_TIMEOUT")
	if err != nil {
		return AssistantConfig{}, err
	}
	probeSeconds := 5
	if probeTimeout != nil {
		probeSeconds = *probeTimeout
	}

	return AssistantConfig{
		AgentURL:     strings.TrimSpace(os.Getenv("WXO_AGENT_URL")),
		APIKey:       strings.TrimSpace(os.Getenv("WXO_API_KEY")),
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
		ProbeTimeout: time.Duration(probeSeconds) * time.Second,
	}, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("Model")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// SessionConfig 描述会话清理策略。TTL 为 0 时不回收会话。
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	ttl, err := parseOptionalIntEnv("SESSION_TTL_MINUTES")
	if err != nil {
		return SessionConfig{}, err
	}
	ttlMinutes := 120
	if ttl != nil {
		ttlMinutes = *ttl
	}

	sweep, err := parseOptionalIntEnv("SESSION_SWEEP_MINUTES")
	if err != nil {
		return SessionConfig{}, err
	}
	sweepMinutes := 10
	if sweep != nil && *sweep > 0 {
		sweepMinutes = *sweep
	}

	return SessionConfig{
		TTL:           time.Duration(ttlMinutes) * time.Minute,
		SweepInterval: time.Duration(sweepMinutes) * time.Minute,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
