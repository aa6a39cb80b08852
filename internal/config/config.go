package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App      `mapstructure:",squash"`
	Server      Server   `mapstructure:",squash"`
	Database    Database `mapstructure:",squash"`
	Mlabs       Mlabs    `mapstructure:",squash"`
	Browser     Browser  `mapstructure:",squash"`
	Collect     Collect  `mapstructure:",squash"`
	Render      Render   `mapstructure:",squash"`
	SecretKey   string   `mapstructure:"secret_key"`
	CookieStore string   `mapstructure:"cookie_store"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Database sem URL configurada faz a aplicação usar o armazenamento em memória
type Database struct {
	DSN            string        `mapstructure:"-"`
	Driver         string        `mapstructure:"database_driver"`
	Password       string        `mapstructure:"database_password"`
	URL            string        `mapstructure:"database_url"`
	User           string        `mapstructure:"database_user"`
	ConnectTimeout time.Duration `mapstructure:"database_connect_timeout"`
}

type Mlabs struct {
	AuthURL       string   `mapstructure:"mlabs_auth_url"`
	BaseURL       string   `mapstructure:"mlabs_base_url"`
	ReportsPath   string   `mapstructure:"mlabs_reports_path"`
	AnalyticsHost string   `mapstructure:"mlabs_analytics_host"`
	ReportNames   []string `mapstructure:"mlabs_report_names"`
}

type Browser struct {
	ControlURL     string        `mapstructure:"browser_control_url"`
	Headless       bool          `mapstructure:"browser_headless"`
	UserAgent      string        `mapstructure:"browser_user_agent"`
	ViewportWidth  int           `mapstructure:"browser_viewport_width"`
	ViewportHeight int           `mapstructure:"browser_viewport_height"`
	NavigateWait   time.Duration `mapstructure:"browser_navigate_timeout"`
}

// Collect agrupa os tempos de espera da coleta
type Collect struct {
	AuthSettle       time.Duration `mapstructure:"collect_auth_settle"`
	ListingSettle    time.Duration `mapstructure:"collect_listing_settle"`
	ListingTimeout   time.Duration `mapstructure:"collect_listing_timeout"`
	ReportSettle     time.Duration `mapstructure:"collect_report_settle"`
	PeriodSettle     time.Duration `mapstructure:"collect_period_settle"`
	PeriodStepDelay  time.Duration `mapstructure:"collect_period_step_delay"`
	PeriodStepWait   time.Duration `mapstructure:"collect_period_step_timeout"`
	RunBudget        time.Duration `mapstructure:"collect_run_budget"`
	CookieSecretName string        `mapstructure:"collect_cookie_secret_name"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_CONNECT_TIMEOUT", 30*time.Second)

	viper.SetDefault("MLABS_AUTH_URL", "")
	viper.SetDefault("MLABS_BASE_URL", "https://analytics.mlabs.io")
	viper.SetDefault("MLABS_REPORTS_PATH", "/reports")
	viper.SetDefault("MLABS_ANALYTICS_HOST", "analytics.mlabs.io")
	viper.SetDefault("MLABS_REPORT_NAMES", []string{})

	viper.SetDefault("BROWSER_CONTROL_URL", "") // browserless, quando definido
	viper.SetDefault("BROWSER_HEADLESS", true)
	viper.SetDefault("BROWSER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	viper.SetDefault("BROWSER_VIEWPORT_WIDTH", 1920)
	viper.SetDefault("BROWSER_VIEWPORT_HEIGHT", 1080)
	viper.SetDefault("BROWSER_NAVIGATE_TIMEOUT", 30*time.Second)

	viper.SetDefault("COLLECT_AUTH_SETTLE", 3*time.Second)
	viper.SetDefault("COLLECT_LISTING_SETTLE", 2*time.Second)
	viper.SetDefault("COLLECT_LISTING_TIMEOUT", 10*time.Second)
	viper.SetDefault("COLLECT_REPORT_SETTLE", 3*time.Second)
	viper.SetDefault("COLLECT_PERIOD_SETTLE", 5*time.Second)
	viper.SetDefault("COLLECT_PERIOD_STEP_DELAY", 1*time.Second)
	viper.SetDefault("COLLECT_PERIOD_STEP_TIMEOUT", 5*time.Second)
	viper.SetDefault("COLLECT_RUN_BUDGET", 5*time.Minute) // limite da função serverless
	viper.SetDefault("COLLECT_COOKIE_SECRET_NAME", "cookie_store")

	viper.SetDefault("SECRET_KEY", "")
	viper.SetDefault("COOKIE_STORE", "")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	switch {
	case config.Database.URL == "":
	case strings.HasPrefix(config.Database.URL, "postgres://"), strings.HasPrefix(config.Database.URL, "postgresql://"):
		config.Database.DSN = config.Database.URL
	default:
		config.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			config.Database.Driver,
			config.Database.User,
			config.Database.Password,
			config.Database.URL,
		)
	}

	return config, nil
}

// ReportsURL retorna a URL da listagem de relatórios
func (m Mlabs) ReportsURL() string {
	return m.BaseURL + m.ReportsPath
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
