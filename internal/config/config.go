package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Drivers de almacenamiento soportados.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Valores por defecto. Los puertos son los históricos del backend MDR.
const (
	DefaultDBPath       = "./data/mdr_contact_tracing.db"
	DefaultPort         = 5000
	DefaultMiniPort     = 5001
	DefaultProbePort    = 5000
	DefaultProbePayload = "Server is alive"
	DefaultAppName      = "mdr-twin-gateway"
)

// Variables de entorno reconocidas.
const (
	EnvConfigFile   = "MDR_CONFIG"
	EnvDBDriver     = "MDR_DB_DRIVER"
	EnvDBPath       = "MDR_DB_PATH"
	EnvDBDSN        = "MDR_DB_DSN"
	EnvPort         = "PORT"
	EnvMiniPort     = "MINI_PORT"
	EnvProbePort    = "PROBE_PORT"
	EnvProbePayload = "PROBE_PAYLOAD"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvAppName      = "APP_NAME"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Mini     ServerConfig   `yaml:"mini"`
	Probe    ProbeConfig    `yaml:"probe"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig apunta al almacenamiento externo del gemelo.
type DatabaseConfig struct {
	// Driver: sqlite | postgres.
	Driver string `yaml:"driver"`

	// Path del archivo SQLite (driver sqlite). Debe existir; nunca se crea.
	Path string `yaml:"path"`

	// DSN de Postgres (driver postgres).
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// Addr devuelve ":<port>" para http.Server / net.Listen.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

type ProbeConfig struct {
	Port    int    `yaml:"port"`
	Payload string `yaml:"payload"`
}

func (p ProbeConfig) Addr() string {
	return ":" + strconv.Itoa(p.Port)
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

// Load arma la configuración en este orden (el último gana):
// defaults -> YAML (MDR_CONFIG, opcional) -> .env -> entorno del proceso.
// .env nunca pisa variables ya definidas en el entorno.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadFrom(os.Getenv(EnvConfigFile), os.LookupEnv)
}

// LoadFrom es Load sin efectos sobre el entorno: lee el YAML en path (si no
// está vacío) y aplica overrides vía lookup.
func LoadFrom(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml %q: %w", path, err)
		}
	}

	if lookup != nil {
		if err := applyEnv(cfg, lookup); err != nil {
			return nil, err
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   DefaultDBPath,
		},
		Server: ServerConfig{Port: DefaultPort},
		Mini:   ServerConfig{Port: DefaultMiniPort},
		Probe: ProbeConfig{
			Port:    DefaultProbePort,
			Payload: DefaultProbePayload,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    DefaultAppName,
		},
	}
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	port := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, key, v)
		}
		*dst = n
		return nil
	}

	str(EnvDBDriver, &cfg.Database.Driver)
	str(EnvDBPath, &cfg.Database.Path)
	str(EnvDBDSN, &cfg.Database.DSN)
	str(EnvLogLevel, &cfg.Log.Level)
	str(EnvLogFormat, &cfg.Log.Format)
	str(EnvAppName, &cfg.Log.App)

	// payload se respeta tal cual (puede tener espacios)
	if v, ok := lookup(EnvProbePayload); ok && v != "" {
		cfg.Probe.Payload = v
	}

	if err := port(EnvPort, &cfg.Server.Port); err != nil {
		return err
	}
	if err := port(EnvMiniPort, &cfg.Mini.Port); err != nil {
		return err
	}
	return port(EnvProbePort, &cfg.Probe.Port)
}

// Validate revisa lo que comparten todos los binarios (puertos y payload).
// La sección database la valida solo quien abre el store: ver DatabaseConfig.Validate.
func Validate(cfg *Config) error {
	for name, p := range map[string]int{
		"server.port": cfg.Server.Port,
		"mini.port":   cfg.Mini.Port,
		"probe.port":  cfg.Probe.Port,
	} {
		if p <= 0 || p > 65535 {
			return fmt.Errorf("%w: %s %d is out of range [1, 65535]", ErrInvalid, name, p)
		}
	}

	if cfg.Probe.Payload == "" {
		cfg.Probe.Payload = DefaultProbePayload
	}
	return nil
}

// Validate normaliza el driver y exige la ubicación que le corresponde.
func (d *DatabaseConfig) Validate() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	switch d.Driver {
	case DriverSQLite:
		if strings.TrimSpace(d.Path) == "" {
			return fmt.Errorf("%w: database.path is required for driver sqlite", ErrInvalid)
		}
	case DriverPostgres:
		if strings.TrimSpace(d.DSN) == "" {
			return fmt.Errorf("%w: database.dsn is required for driver postgres", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: database.driver %q unknown: want sqlite|postgres", ErrInvalid, d.Driver)
	}
	return nil
}
