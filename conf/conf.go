package conf

import (
	"errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/MagedNabil/graphQL/internal/log"
	"github.com/MagedNabil/graphQL/internal/pkg/xcache"
	"github.com/MagedNabil/graphQL/internal/server"
	"github.com/MagedNabil/graphQL/internal/server/biz"
	"github.com/MagedNabil/graphQL/internal/server/db"
	"github.com/MagedNabil/graphQL/internal/server/sweeper"
)

// DefaultJWTSecret is the signing secret the first deployment shipped with.
// It is well known, so deployments should override auth.jwt_secret.
const DefaultJWTSecret = "husshh"

type Config struct {
	Server  server.Config  `conf:"server" yaml:"server" json:"server"`
	DB      db.Config      `conf:"db" yaml:"db" json:"db"`
	Auth    biz.Config     `conf:"auth" yaml:"auth" json:"auth"`
	Cache   xcache.Config  `conf:"cache" yaml:"cache" json:"cache"`
	Log     log.Config     `conf:"log" yaml:"log" json:"log"`
	Sweeper sweeper.Config `conf:"sweeper" yaml:"sweeper" json:"sweeper"`
}

// Module exposes the loaded config and its sections to the dependency graph.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Provide(func(cfg Config) server.Config { return cfg.Server }),
	fx.Provide(func(cfg Config) db.Config { return cfg.DB }),
	fx.Provide(func(cfg Config) biz.Config { return cfg.Auth }),
	fx.Provide(func(cfg Config) xcache.Config { return cfg.Cache }),
	fx.Provide(func(cfg Config) log.Config { return cfg.Log }),
	fx.Provide(func(cfg Config) sweeper.Config { return cfg.Sweeper }),
)

// Load reads config.yaml (working directory, ./conf, or /etc/graphql) merged
// over defaults, with GRAPHQL_-prefixed environment variables on top.
func Load() (Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./conf")
	v.AddConfigPath("/etc/graphql")

	v.SetEnvPrefix("GRAPHQL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config

	err = v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
	})
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.name", "graphql")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.graphiql", true)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.cors.enabled", false)

	v.SetDefault("db.dialect", "memory")
	v.SetDefault("db.dsn", "")

	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_expiry", "0s")

	v.SetDefault("cache.mode", "memory")
	v.SetDefault("cache.memory.expiration", "5m")
	v.SetDefault("cache.memory.cleanup_interval", "10m")

	v.SetDefault("log.name", "graphql")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("sweeper.enabled", false)
	v.SetDefault("sweeper.cron", "0 0 * * * *")
}
