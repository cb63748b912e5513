package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/akolanti/GoPDFChat/internal/config"
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
	ForceAttemptHTTP2:   true,
}

var (
	pooledClient *http.Client
	once         sync.Once
)

// GetPooledClient returns the http client shared by the llm providers so generation calls
// reuse connections. Deadlines come from the request context.
func GetPooledClient() *http.Client {
	once.Do(func() {
		pooledClient = &http.Client{Transport: customTransport}
	})
	return pooledClient
}

// CloseIdle drops pooled connections, called on shutdown.
func CloseIdle() {
	customTransport.CloseIdleConnections()
}
