package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ENV                       = "ENV"
	PORT                      = "PORT"
	API_BASE_URL              = "API_BASE_URL"
	APP_URL                   = "APP_URL"
	AUTH_API_URL              = "AUTH_API_URL"
	DEFAULT_USER_ID           = "DEFAULT_USER_ID"
	MONGODB_URI               = "MONGODB_URI"
	REDIS_URI                 = "REDIS_URI"
	EVOLUTION_CONNECT_TIMEOUT = "EVOLUTION_CONNECT_TIMEOUT"
	N8N_WORKSPACE_WEBHOOK_URL = "N8N_WORKSPACE_WEBHOOK_URL"
	RDSTATION_CLIENT_ID       = "RDSTATION_CLIENT_ID"

	ENV_DEVELOPMENT = "development"
	ENV_HOMOLOG     = "homolog"
	ENV_RELEASE     = "production"
)

const DEFAULT_EVOLUTION_CONNECT_TIMEOUT = 30 * time.Second

var allowedKeys = []string{
	ENV, PORT, API_BASE_URL, APP_URL, AUTH_API_URL, DEFAULT_USER_ID, MONGODB_URI, REDIS_URI,
	EVOLUTION_CONNECT_TIMEOUT, N8N_WORKSPACE_WEBHOOK_URL, RDSTATION_CLIENT_ID,
}

var requiredKeys = []string{ENV, PORT, API_BASE_URL, AUTH_API_URL, MONGODB_URI, REDIS_URI}

var allowedEnvValues = []string{ENV_DEVELOPMENT, ENV_HOMOLOG, ENV_RELEASE}

// Config reúne os valores do .env já validados. É montado uma vez no main e
// repassado explicitamente para quem precisa.
type Config struct {
	Env                     string
	Port                    string
	APIBaseURL              string
	AppURL                  string
	AuthAPIURL              string
	DefaultUserID           string
	MongoURI                string
	RedisURI                string
	EvolutionConnectTimeout time.Duration
	N8NWorkspaceWebhookURL  string
	RDStationClientID       string
}

func (c *Config) IsRelease() bool {
	return c.Env == ENV_RELEASE
}

func LoadEnvVariables() *Config {
	workDir, err := os.Getwd()
	if err != nil {
		panic("[ENV] Erro ao obter o diretório de trabalho: " + err.Error())
	}

	values, err := godotenv.Read(filepath.Join(workDir, ".env"))
	if err != nil {
		panic("[ENV] Erro ao abrir o arquivo .env: " + err.Error())
	}

	cfg, err := ParseEnv(values)
	if err != nil {
		panic(err.Error())
	}

	for key, value := range values {
		if err := os.Setenv(key, value); err != nil {
			panic("[ENV] Erro ao definir variável de ambiente " + key + ": " + err.Error())
		}
	}

	return cfg
}

// ParseEnv valida as chaves lidas do .env e monta o Config.
func ParseEnv(values map[string]string) (*Config, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("[ENV] O arquivo .env está vazio")
	}

	for key := range values {
		if !slices.Contains(allowedKeys, key) {
			return nil, fmt.Errorf("[ENV] Chave '%s' não é permitida. Chaves permitidas: %s",
				key, strings.Join(allowedKeys, ", "))
		}
	}

	var missingKeys []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(values[key]) == "" {
			missingKeys = append(missingKeys, key)
		}
	}
	if len(missingKeys) > 0 {
		return nil, fmt.Errorf("[ENV] Variáveis de ambiente obrigatórias ausentes: %s",
			strings.Join(missingKeys, ", "))
	}

	if !slices.Contains(allowedEnvValues, values[ENV]) {
		return nil, fmt.Errorf("[ENV] Valor inválido para ENV: %s. Valores permitidos: %s",
			values[ENV], strings.Join(allowedEnvValues, ", "))
	}

	cfg := &Config{
		Env:                     values[ENV],
		Port:                    values[PORT],
		APIBaseURL:              strings.TrimRight(values[API_BASE_URL], "/"),
		AppURL:                  strings.TrimRight(values[APP_URL], "/"),
		AuthAPIURL:              strings.TrimRight(values[AUTH_API_URL], "/"),
		DefaultUserID:           values[DEFAULT_USER_ID],
		MongoURI:                values[MONGODB_URI],
		RedisURI:                values[REDIS_URI],
		EvolutionConnectTimeout: DEFAULT_EVOLUTION_CONNECT_TIMEOUT,
		N8NWorkspaceWebhookURL:  values[N8N_WORKSPACE_WEBHOOK_URL],
		RDStationClientID:       values[RDSTATION_CLIENT_ID],
	}

	if raw := values[EVOLUTION_CONNECT_TIMEOUT]; raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("[ENV] Valor inválido para %s: %s", EVOLUTION_CONNECT_TIMEOUT, raw)
		}
		cfg.EvolutionConnectTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}
