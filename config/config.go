package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type consumers struct {
	CatalogSaverGroup string `mapstructure:"catalog_saver_group"`
}

type topics struct {
	CatalogProducts      string `mapstructure:"catalog_products"`
	CartEvents           string `mapstructure:"cart_events"`
	ListingsFilterStream string `mapstructure:"listings_filter_stream"`
	ListingsFilterTable  string `mapstructure:"listings_filter_table"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
	TLS                tlsFiles  `mapstructure:"tls"`
}

type archive struct {
	HDFSAddr string `mapstructure:"hdfs_addr"`
	Dir      string `mapstructure:"dir"`
}

type analytics struct {
	SparkAddr string `mapstructure:"spark_addr"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Broker         broker     `mapstructure:"broker"`
	Archive        archive    `mapstructure:"archive"`
	Analytics      analytics  `mapstructure:"analytics"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogProducts=%q
		CartEvents=%q
		ListingsFilterStream=%q
		ListingsFilterTable=%q
	Consumers:
		CatalogSaverGroup=%q

	Archive:
	HDFSAddr=%q
	Dir=%q

	Analytics:
	SparkAddr=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogProducts,
		c.Broker.Topics.CartEvents,
		c.Broker.Topics.ListingsFilterStream,
		c.Broker.Topics.ListingsFilterTable,
		c.Broker.Consumers.CatalogSaverGroup,
		c.Archive.HDFSAddr,
		c.Archive.Dir,
		c.Analytics.SparkAddr,
	)
}
