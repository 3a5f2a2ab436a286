package config

import (
	"flag"
	"os"
	"sync"
)

const (
	defaultServerAddress   = ":8080"
	defaultDatabaseDSN     = ""
	defaultMercadoPagoAddr = "https://api.mercadopago.com"
	defaultDiscordAddr     = "https://discord.com/api/v10"
	defaultLogLevel        = "debug"
)

type Config struct {
	ServerAddr        string
	DatabaseDSN       string
	MercadoPagoAddr   string
	MercadoPagoToken  string
	DiscordAddr       string
	DiscordToken      string
	AdminLogin        string
	AdminPasswordHash string
	LogLevel          string
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "database DSN")
		flag.StringVar(&cfg.MercadoPagoAddr, "m", defaultMercadoPagoAddr, "mercado pago api address")
		flag.StringVar(&cfg.DiscordAddr, "c", defaultDiscordAddr, "discord api address")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if dataBaseURIEnv := os.Getenv("DATABASE_URI"); dataBaseURIEnv != "" {
			cfg.DatabaseDSN = dataBaseURIEnv
		}
		if mpAddrEnv := os.Getenv("MERCADO_PAGO_ADDRESS"); mpAddrEnv != "" {
			cfg.MercadoPagoAddr = mpAddrEnv
		}
		if discordAddrEnv := os.Getenv("DISCORD_ADDRESS"); discordAddrEnv != "" {
			cfg.DiscordAddr = discordAddrEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}

		// secrets are environment only
		cfg.MercadoPagoToken = os.Getenv("MERCADO_PAGO_ACCESS_TOKEN")
		cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
		cfg.AdminLogin = os.Getenv("ADMIN_LOGIN")
		cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

		singleton = &cfg
	})

	return singleton, nil
}
