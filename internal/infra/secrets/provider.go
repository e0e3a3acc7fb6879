package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// DatabaseCredentials é o shape JSON devolvido pelo provedor de segredos.
type DatabaseCredentials struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c DatabaseCredentials) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

type CredentialProvider interface {
	GetDatabaseCredentials(ctx context.Context) (*DatabaseCredentials, error)
}

// EnvProvider lê o segredo do ambiente: DATABASE_SECRET_JSON (blob JSON, como
// entregue pelo cofre) ou, na ausência, as variáveis discretas DB_*.
type EnvProvider struct{}

func (EnvProvider) GetDatabaseCredentials(ctx context.Context) (*DatabaseCredentials, error) {
	if raw := os.Getenv("DATABASE_SECRET_JSON"); raw != "" {
		var creds DatabaseCredentials
		if err := json.Unmarshal([]byte(raw), &creds); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_SECRET_JSON: %w", err)
		}
		return &creds, nil
	}

	creds := &DatabaseCredentials{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Database: os.Getenv("DB_NAME"),
		Username: os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASS"),
	}
	if creds.Host == "" || creds.Database == "" {
		return nil, fmt.Errorf("database credentials not configured")
	}
	if creds.Port == "" {
		creds.Port = "5432"
	}
	return creds, nil
}
