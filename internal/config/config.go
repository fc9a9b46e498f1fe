package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Currency    string `env:"CURRENCY" envDefault:"KES"`

	Database Database `envPrefix:"DB_"`
	Auth     Auth     `envPrefix:"AUTH_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Kafka    Kafka    `envPrefix:"KAFKA_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsProduction() bool {
	return e.Name == "production"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host            string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type Database struct {
	Driver          string        `env:"DRIVER" envDefault:"sqlite"` // sqlite, mysql, postgres
	URL             string        `env:"URL" envDefault:"storefront.db"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"50"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"1h"`
	Seed            bool          `env:"SEED" envDefault:"false"`
}

type Auth struct {
	TokenSecret string        `env:"TOKEN_SECRET" envDefault:"change-me-in-production"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	Issuer      string        `env:"ISSUER" envDefault:"storefront"`
}

type Redis struct {
	Addr       string        `env:"ADDR"` // empty disables the catalog cache
	Password   string        `env:"PASSWORD"`
	DB         int           `env:"DB" envDefault:"0"`
	CatalogTTL time.Duration `env:"CATALOG_TTL" envDefault:"5m"`
}

type Kafka struct {
	Brokers     []string `env:"BROKERS" envSeparator:","` // empty disables event publishing
	OrdersTopic string   `env:"TOPIC_ORDERS" envDefault:"orders.events"`
}
