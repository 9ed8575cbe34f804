package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (postgres, sqlite)
//	-docs-dir protected documents directory
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-session-ttl session lifetime (e.g., "24h")
//	-login-url login page URL
//	-login-redirect post-login redirect URL
//	-logout-redirect post-logout redirect URL
//	-admin-login bootstrap admin login
//	-admin-password bootstrap admin password
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-reap-interval session reaper interval (e.g., "10m")
func ParseFlags() *StructuredConfig {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var documentsDir string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var sessionTTL time.Duration
	var loginURL string
	var loginRedirectURL string
	var logoutRedirectURL string
	var adminLogin string
	var adminPassword string
	var requestTimeout time.Duration
	var reapInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "db-driver", "", "Database driver (postgres, sqlite)")
	flag.StringVar(&documentsDir, "docs-dir", "", "Protected documents directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 24h)")
	flag.StringVar(&loginURL, "login-url", "", "Login page URL")
	flag.StringVar(&loginRedirectURL, "login-redirect", "", "Post-login redirect URL")
	flag.StringVar(&logoutRedirectURL, "logout-redirect", "", "Post-logout redirect URL")
	flag.StringVar(&adminLogin, "admin-login", "", "Bootstrap admin login")
	flag.StringVar(&adminPassword, "admin-password", "", "Bootstrap admin password")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&reapInterval, "reap-interval", 0, "Session reaper interval (e.g., 10m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			AdminLogin:    adminLogin,
			AdminPassword: adminPassword,
		},
		Sessions: Sessions{
			TTL:               sessionTTL,
			LoginURL:          loginURL,
			LoginRedirectURL:  loginRedirectURL,
			LogoutRedirectURL: logoutRedirectURL,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			Files: Files{
				DocumentsDir: documentsDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so that the
// merge step can fall through to lower-priority sources.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses a "[host]:[port]" string into the receiver.
// Implements the flag.Value interface.
func (a *NetAddress) Set(value string) error {
	host, portString, err := net.SplitHostPort(strings.TrimSpace(value))
	if err != nil {
		return err
	}

	port, err := strconv.Atoi(portString)
	if err != nil {
		return errors.New("port must be a number")
	}

	a.Host = host
	a.Port = port

	return nil
}
