package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds the runtime overrides read from the process environment.
// Zero values mean "use the preference or built-in default".
type Env struct {
	DBPath    string `env:"CIRCLE_DB_PATH"`
	Port      string `env:"CIRCLE_PORT"`
	Language  string `env:"CIRCLE_LANG"`
	Debug     bool   `env:"CIRCLE_DEBUG"`
	TopEvents int    `env:"CIRCLE_TOP_EVENTS" envDefault:"3"`
}

// LoadEnv loads the optional dotenv files, then parses the environment into Env.
// Variables already present in the process environment win over the files.
// A missing dotenv file is not an error.
func LoadEnv(dotenvFiles ...string) (Env, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("%s: %w", ErrDotEnv, err)
		}
		slog.Debug(MsgDotEnvMissing, LogKeyComponent, CompConfig)
	}

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("%s: %w", ErrEnvParse, err)
	}
	if e.TopEvents < 0 {
		e.TopEvents = DefaultTopEvents
	}
	return e, nil
}
