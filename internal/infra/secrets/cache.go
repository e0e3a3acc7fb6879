package secrets

import (
	"context"
	"sync"
)

// ConnectionStringCache resolve a connection string uma vez por processo e a
// serve de memória depois. O mutex garante visibilidade read-after-write com
// vários workers consultando ao mesmo tempo.
type ConnectionStringCache struct {
	mu       sync.RWMutex
	provider CredentialProvider
	value    string
	loaded   bool
}

func NewConnectionStringCache(provider CredentialProvider) *ConnectionStringCache {
	return &ConnectionStringCache{provider: provider}
}

func (c *ConnectionStringCache) Get(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.value, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Outro goroutine pode ter carregado entre o RUnlock e o Lock.
	if c.loaded {
		return c.value, nil
	}

	creds, err := c.provider.GetDatabaseCredentials(ctx)
	if err != nil {
		return "", err
	}

	c.value = creds.ConnectionString()
	c.loaded = true
	return c.value, nil
}
