package config

import (
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"dnstwister/pkg/cache"
	"dnstwister/pkg/fuzzer"
	"dnstwister/pkg/glyph"
	"dnstwister/pkg/keyboard"
	"dnstwister/pkg/model"
	"dnstwister/pkg/tld"
)

// Configuration represents a configuration element
type Configuration struct {
	ListenAddress   string
	RequestTimeout  time.Duration
	MaxPrefixLength int
	DebugAddress    string
	LogLevel        string
	Workers         int
	Domains         []string
	WatchInterval   time.Duration
	Nameserver      string
	ResolveTimeout  time.Duration
	CacheSize       int
	CacheTTL        time.Duration
	ParkedTimeout   time.Duration
	Keyboards       []string
	TLDFile         string
	SlackWebhookURL string
	SlackIconURL    string
	SlackUsername   string
	TakeScreenshot  bool

	Tables     fuzzer.Tables         `mapstructure:"-"`
	Suffixes   *tld.Table            `mapstructure:"-"`
	Candidates chan *model.Candidate `mapstructure:"-"`
	Buffer     chan *model.Result    `mapstructure:"-"`
	Alerted    *cache.Cache          `mapstructure:"-"`
}

// Load reads the optional config file, then the environment, and builds the tables
func Load(configFile string) (*Configuration, error) {
	c := &Configuration{}

	v := viper.New()
	v.SetDefault("ListenAddress", "localhost:8080")
	v.SetDefault("RequestTimeout", "1m")
	v.SetDefault("MaxPrefixLength", 100)
	v.SetDefault("DebugAddress", "")
	v.SetDefault("LogLevel", "info")
	v.SetDefault("Workers", 20)
	v.SetDefault("Domains", []string{})
	v.SetDefault("WatchInterval", "1h")
	v.SetDefault("Nameserver", "")
	v.SetDefault("ResolveTimeout", "3s")
	v.SetDefault("CacheSize", 10000)
	v.SetDefault("CacheTTL", "10m")
	v.SetDefault("ParkedTimeout", "10s")
	v.SetDefault("Keyboards", []string{"qwerty", "qwertz", "azerty"})
	v.SetDefault("TLDFile", "")
	v.SetDefault("SlackWebhookURL", "")
	v.SetDefault("SlackIconURL", "")
	v.SetDefault("SlackUsername", "DNSTwister")
	v.SetDefault("TakeScreenshot", false)

	if configFile != "" {
		d, f := path.Split(configFile)
		if d == "" {
			d = "."
		}
		v.SetConfigName(f[0 : len(f)-len(filepath.Ext(f))])
		v.AddConfigPath(d)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "error when reading config file")
		}
	}
	v.AutomaticEnv()
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "error when decoding config")
	}

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "bad log level")
	}
	log.SetLevel(level)

	if c.SlackUsername == "" {
		c.SlackUsername = "DNSTwister"
	}
	if c.Workers < 1 {
		return nil, errors.New("workers must be strictly a positive number")
	}
	if c.MaxPrefixLength < 0 {
		return nil, errors.New("max prefix length can't be negative")
	}
	if c.CacheSize < 0 {
		return nil, errors.New("cache size can't be negative")
	}

	layouts, err := keyboard.ByNames(c.Keyboards)
	if err != nil {
		return nil, err
	}
	c.Tables = fuzzer.Tables{Glyphs: glyph.Default(), Keyboards: layouts}

	c.Suffixes = tld.Default()
	if c.TLDFile != "" {
		if c.Suffixes, err = tld.LoadFile(c.TLDFile); err != nil {
			return nil, err
		}
	}

	c.Candidates = make(chan *model.Candidate, 50)
	c.Buffer = make(chan *model.Result, 50)
	alerted := c.CacheSize
	if alerted == 0 {
		alerted = 10000
	}
	c.Alerted = cache.New(alerted)
	return c, nil
}

// GetConfig provides a Configuration or exits
func GetConfig(configFile *string) *Configuration {
	var f string
	if configFile != nil {
		f = *configFile
	}
	c, err := Load(f)
	if err != nil {
		log.Fatalf("[ERROR] : %v", err)
	}
	return c
}
