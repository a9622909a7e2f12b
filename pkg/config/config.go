package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	JWT     JWTConfig
	Upload  UploadConfig
	Session SessionConfig
	Archive ArchiveConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP del tablero.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig API REST remota que guarda declaraciones y documentos.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// JWTConfig si Secret está vacío los tokens se decodifican sin verificar firma
// (la verifica el backend) y las rutas /api/declarations/render e /import,
// que no llaman al backend, responden 401.
type JWTConfig struct {
	Secret string
}

// UploadConfig límites para archivos adjuntos (recibos, facturas, permisos).
type UploadConfig struct {
	MaxBytes     int64
	AllowedTypes []string // tipos MIME
}

// SessionConfig ubicación del archivo de sesión del CLI (token + user id).
type SessionConfig struct {
	File string
}

// ArchiveConfig destino de descargas: directorio local o bucket MinIO.
// Con MinioEndpoint vacío se usa Dir.
type ArchiveConfig struct {
	Dir            string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	PresignExpiry  time.Duration
}

// UseMinio indica si hay un bucket configurado.
func (c ArchiveConfig) UseMinio() bool {
	return c.MinioEndpoint != "" && c.MinioBucket != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_BASE_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "customs-receipts"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "BACKEND_BASE_URL", "http://localhost:5000"), "/"),
			Timeout: time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
		},
		Upload: UploadConfig{
			MaxBytes:     int64(getInt(v, "UPLOAD_MAX_BYTES", 10<<20)),
			AllowedTypes: splitList(getString(v, "UPLOAD_ALLOWED_TYPES", "application/pdf,image/jpeg,image/png")),
		},
		Session: SessionConfig{
			File: expandHome(getString(v, "SESSION_FILE", "~/.customs-receipts/session.json")),
		},
		Archive: ArchiveConfig{
			Dir:            expandHome(getString(v, "DOWNLOAD_DIR", "downloads")),
			MinioEndpoint:  getString(v, "MINIO_ENDPOINT", ""),
			MinioAccessKey: getString(v, "MINIO_ACCESS_KEY", ""),
			MinioSecretKey: getString(v, "MINIO_SECRET_KEY", ""),
			MinioBucket:    getString(v, "MINIO_BUCKET", ""),
			MinioUseSSL:    getBool(v, "MINIO_USE_SSL", false),
			PresignExpiry:  time.Duration(getInt(v, "MINIO_PRESIGN_HOURS", 24)) * time.Hour,
		},
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: BACKEND_BASE_URL es requerido")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
