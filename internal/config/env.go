package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env agrupa la configuración del proceso, leída del entorno.
type Env struct {
	AppAddr   string        `env:"APP_ADDR" envDefault:":8080"`
	GinMode   string        `env:"GIN_MODE"`
	DBDSN     string        `env:"DB_DSN" envDefault:"root:@tcp(127.0.0.1:3306)/inventario?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"`
	JWTSecret string        `env:"JWT_SECRET" envDefault:"super-secret-key-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	// Debug habilita el detalle interno en los errores 500.
	Debug       bool     `env:"DEBUG" envDefault:"false"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("error leyendo configuración del entorno: %w", err)
	}
	return e, nil
}
