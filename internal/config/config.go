package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	DB       DBConfig       `mapstructure:"db"`
	Cron     CronConfig     `mapstructure:"cron"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	History  HistoryConfig  `mapstructure:"history"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	PriceCheck string `mapstructure:"price_check"`
}

type ScraperConfig struct {
	UserAgent     string        `mapstructure:"user_agent"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	RenderTimeout time.Duration `mapstructure:"render_timeout"`
	MaxRedirects  int           `mapstructure:"max_redirects"`
	RenderEnabled bool          `mapstructure:"render_enabled"`
	BrowserBin    string        `mapstructure:"browser_bin"`
}

type MonitorConfig struct {
	BatchSize int           `mapstructure:"batch_size"`
	ItemDelay time.Duration `mapstructure:"item_delay"`
}

type NotifierConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type HistoryConfig struct {
	DefaultDays int `mapstructure:"default_days"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	// Six-field spec (the runner is configured with seconds): every 6 hours.
	v.SetDefault("cron.price_check", "0 0 */6 * * *")
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36")
	v.SetDefault("scraper.fetch_timeout", "10s")
	v.SetDefault("scraper.render_timeout", "50s")
	v.SetDefault("scraper.max_redirects", 5)
	v.SetDefault("scraper.render_enabled", true)
	v.SetDefault("scraper.browser_bin", "")
	v.SetDefault("monitor.batch_size", 50)
	v.SetDefault("monitor.item_delay", "2s")
	v.SetDefault("notifier.smtp_host", "")
	v.SetDefault("notifier.smtp_port", 587)
	v.SetDefault("notifier.username", "")
	v.SetDefault("notifier.password", "")
	v.SetDefault("notifier.from", "")
	v.SetDefault("history.default_days", 30)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
