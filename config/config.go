package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging      LoggingConfig    `yaml:"logging"`
	Server       ServerConfig     `yaml:"server"`
	Site         SiteConfig       `yaml:"site"`
	Uploads      UploadsConfig    `yaml:"uploads"`
	Pagination   PaginationConfig `yaml:"pagination"`
	RelatedPosts int              `yaml:"related_posts"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// SiteConfig 는 sitemap/RSS 등 절대 URL 생성에 사용하는 사이트 메타데이터다.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// UploadsConfig is where admin image uploads land on disk.
// The directory is served verbatim by the hosting platform, so it must live
// under the public root.
type UploadsConfig struct {
	Dir          string `yaml:"dir"`
	MaxSizeBytes int64  `yaml:"max_size_bytes"`
}

type PaginationConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func applyDefaults(c *AppConfig) {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = filepath.Join("public", "images")
	}
	if c.Uploads.MaxSizeBytes <= 0 {
		c.Uploads.MaxSizeBytes = 5 << 20
	}
	if c.Pagination.DefaultPageSize <= 0 {
		c.Pagination.DefaultPageSize = 20
	}
	if c.Pagination.MaxPageSize <= 0 {
		c.Pagination.MaxPageSize = 100
	}
	if c.RelatedPosts <= 0 {
		c.RelatedPosts = 3
	}
}

// UploadAPIKey 는 관리자 API 인증에 사용하는 공유 시크릿이다.
// 프로세스 시작 시 환경변수에서 읽으며, 빈 값이면 관리자 API 전체가 거부된다.
func UploadAPIKey() string {
	return os.Getenv("POSTS_UPLOAD_API_KEY")
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
