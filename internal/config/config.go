package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Store struct {
		Driver string
	} `mapstructure:"store"`

	Postgres struct {
		DSN     string
		Migrate bool
	} `mapstructure:"postgres"`

	Redis struct {
		Addr string
	} `mapstructure:"redis"`

	Auth struct {
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`

	// Admin, when both fields are set, is created at startup if missing.
	Admin struct {
		Email    string
		Password string
	} `mapstructure:"admin"`

	Dashboard struct {
		LowStockThreshold int           `mapstructure:"low_stock_threshold"`
		RecentSalesLimit  int           `mapstructure:"recent_sales_limit"`
		RevenueMode       string        `mapstructure:"revenue_mode"`
		LoadTimeout       time.Duration `mapstructure:"load_timeout"`
	} `mapstructure:"dashboard"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	RateLimit struct {
		RPS   float64
		Burst int
	} `mapstructure:"ratelimit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.migrate", true)
	v.SetDefault("redis.addr", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("dashboard.low_stock_threshold", 10)
	v.SetDefault("dashboard.recent_sales_limit", 5)
	v.SetDefault("dashboard.revenue_mode", "rows")
	v.SetDefault("dashboard.load_timeout", time.Duration(0))
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)
}

// Load reads the yaml file at path (optional) and lets APP_* variables
// override any key, e.g. APP_POSTGRES_DSN. A .env file in the working
// directory is loaded first when present.
func Load(path string) (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "postgres":
		if c.Postgres.DSN == "" {
			return errors.New("postgres.dsn is required when store.driver is postgres")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	switch c.Dashboard.RevenueMode {
	case "rows", "sum":
	default:
		return fmt.Errorf("unknown dashboard.revenue_mode %q", c.Dashboard.RevenueMode)
	}
	if c.Dashboard.LowStockThreshold < 0 {
		return errors.New("dashboard.low_stock_threshold must not be negative")
	}
	if c.Dashboard.RecentSalesLimit < 0 {
		return errors.New("dashboard.recent_sales_limit must not be negative")
	}
	if c.App.Env != "dev" && c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required outside dev")
	}
	return nil
}
