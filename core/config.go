package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName   string
	Env       string // DEV (default), TEST, QA, PROD
	Debug     bool
	TestMode  bool
	SecretKey []byte

	// DataDir is the directory holding the key/value store files.
	DataDir string

	DefaultCurrency  string
	DefaultFromEmail mail.Address
	HeadmasterEmail  string
	SendgridApiKey   string
	RollbarToken     string

	Server struct {
		Host               string
		Port               string
		JWTExpirationDelta time.Duration
	}
}

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

var Conf *Config

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Shule")
	v.SetDefault("secretKey", "x2m$7y)1uq&vn^ege+_0d(h4z!p#*c9(#yg5h^$cwsl8abc")
	v.SetDefault("dataDir", filepath.Join(Getwd(), "data"))
	v.SetDefault("defaultCurrency", "USD")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("headmasterEmail", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)

	env := os.Getenv("ENV")
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         testMode,
		SecretKey:        []byte(v.GetString("secretKey")),
		DataDir:          v.GetString("dataDir"),
		DefaultCurrency:  v.GetString("defaultCurrency"),
		DefaultFromEmail: mail.Address{Address: v.GetString("defaultFromEmail")},
		HeadmasterEmail:  v.GetString("headmasterEmail"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
	}
	Conf.Server.Host = v.GetString("serverHost")
	Conf.Server.Port = v.GetString("serverPort")
	Conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
}
