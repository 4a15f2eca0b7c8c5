package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type BoardConfig struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Config struct {
	ListenAddr   string `yaml:"listen_addr"`
	SiteName     string `yaml:"site_name"`
	DatabasePath string `yaml:"database_path"`
	UploadsDir   string `yaml:"uploads_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	StaticDir    string `yaml:"static_dir"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	ThreadsPerPage   int   `yaml:"threads_per_page"`
	RepliesPreview   int   `yaml:"replies_preview"` // last N replies shown per thread on the board page
	MaxMessageBytes  int   `yaml:"max_message_bytes"`
	MaxUploadBytes   int64 `yaml:"max_upload_bytes"`
	ThreadPreviewLen int   `yaml:"thread_preview_len"`
	ReplyPreviewLen  int   `yaml:"reply_preview_len"`

	Boards []BoardConfig `yaml:"boards"`
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configPath string) *Config {
	var cfg Config
	mustLoadPath(configPath, &cfg)
	cfg.applyDefaults()
	if len(cfg.Boards) == 0 {
		panic(fmt.Sprintf("config %s declares no boards", configPath))
	}
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.SiteName == "" {
		c.SiteName = "ashchan"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/ashchan.db"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "uploads"
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = "web/templates"
	}
	if c.StaticDir == "" {
		c.StaticDir = "web/static"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ThreadsPerPage <= 0 {
		c.ThreadsPerPage = 10
	}
	if c.RepliesPreview <= 0 {
		c.RepliesPreview = 3
	}
	if c.MaxMessageBytes <= 0 {
		c.MaxMessageBytes = 50_000
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 50 << 20
	}
	if c.ThreadPreviewLen <= 0 {
		c.ThreadPreviewLen = 160
	}
	if c.ReplyPreviewLen <= 0 {
		c.ReplyPreviewLen = 80
	}
}
