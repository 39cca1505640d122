package config

import (
	"errors"
	"io/fs"

	"summarizer-agent/internal/logger"

	"github.com/joho/godotenv"
)

// DotEnvFile is read from the working directory at startup
const DotEnvFile = ".env"

// LoadDotEnv loads variables from the given files, or DotEnvFile when none are
// given. Variables already set in the process environment are not overridden
// and a missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DotEnvFile}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		logger.Log.WithField("file", file).Debug("Loaded environment file")
	}
	return nil
}
