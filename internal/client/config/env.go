package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/faktura/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv loads the dotenv file named by -e/-env (or ./.env when present)
// into the process environment, then overlays every FAKTURA_* variable that
// is set. Variables already present in the environment win over the file.
// An explicitly named file that cannot be read, or a malformed value, panics.
func parseEnv(cfg *Config) {
	path := flagx.ConfigFiles().Env
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}

// Usage describes the supported environment variables.
func Usage() string {
	var c Config
	desc, err := cleanenv.GetDescription(&c, nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(desc)
}
