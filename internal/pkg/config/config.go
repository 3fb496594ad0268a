package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/spf13/viper"
)

const envPrefix = "WAGEDASH"

// Config собирает все настройки сервиса.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Data     DataConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Addr         string
	AllowOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type DataConfig struct {
	Source              string
	Dir                 string
	NationalFile        string
	IndustryFile        string
	PrefectureFile      string
	CoordinatesFile     string
	WageEncoding        string
	CoordinatesEncoding string
}

type PostgresConfig struct {
	DSN            string
	ConnectRetries uint64
}

// Path склеивает имя файла с каталогом данных.
func (d DataConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperServerAddrKey, ":8080")
	v.SetDefault(constants.ViperServerAllowOriginsKey, []string{"http://localhost:3000"})

	v.SetDefault(constants.ViperLogLevelKey, "info")
	v.SetDefault(constants.ViperLogFormatKey, "json")

	v.SetDefault(constants.ViperDataSourceKey, constants.DataSourceCSV)
	v.SetDefault(constants.ViperDataDirKey, "./csv_data")
	v.SetDefault(constants.ViperDataNationalFileKey, "雇用_医療福祉_一人当たり賃金_全国_全産業.csv")
	v.SetDefault(constants.ViperDataIndustryFileKey, "雇用_医療福祉_一人当たり賃金_全国_大分類.csv")
	v.SetDefault(constants.ViperDataPrefectureFileKey, "雇用_医療福祉_一人当たり賃金_都道府県_全産業.csv")
	v.SetDefault(constants.ViperDataCoordinatesFileKey, "pref_lat_lon.csv")
	v.SetDefault(constants.ViperDataWageEncodingKey, "shift-jis")
	v.SetDefault(constants.ViperDataCoordinatesEncodingKey, "utf-8")

	v.SetDefault(constants.ViperPostgresDSNKey, "")
	v.SetDefault(constants.ViperPostgresConnectRetriesKey, 5)
}

// Load читает config.yaml (если есть) и переменные окружения WAGEDASH_*.
// configPath может быть пустым, тогда файл ищется в . и ./configs.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("viper.ReadInConfig: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:         v.GetString(constants.ViperServerAddrKey),
			AllowOrigins: v.GetStringSlice(constants.ViperServerAllowOriginsKey),
		},
		Log: LogConfig{
			Level:  v.GetString(constants.ViperLogLevelKey),
			Format: v.GetString(constants.ViperLogFormatKey),
		},
		Data: DataConfig{
			Source:              v.GetString(constants.ViperDataSourceKey),
			Dir:                 v.GetString(constants.ViperDataDirKey),
			NationalFile:        v.GetString(constants.ViperDataNationalFileKey),
			IndustryFile:        v.GetString(constants.ViperDataIndustryFileKey),
			PrefectureFile:      v.GetString(constants.ViperDataPrefectureFileKey),
			CoordinatesFile:     v.GetString(constants.ViperDataCoordinatesFileKey),
			WageEncoding:        v.GetString(constants.ViperDataWageEncodingKey),
			CoordinatesEncoding: v.GetString(constants.ViperDataCoordinatesEncodingKey),
		},
		Postgres: PostgresConfig{
			DSN:            v.GetString(constants.ViperPostgresDSNKey),
			ConnectRetries: v.GetUint64(constants.ViperPostgresConnectRetriesKey),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Data.Source {
	case constants.DataSourceCSV:
	case constants.DataSourcePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("%s is required for data source %q", constants.ViperPostgresDSNKey, c.Data.Source)
		}
	default:
		return fmt.Errorf("unknown data source %q", c.Data.Source)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%s is empty", constants.ViperServerAddrKey)
	}

	return nil
}
