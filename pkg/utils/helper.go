package utils

import (
	"errors"
	"io/fs"
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// viper returns a plain *fs.PathError when SetConfigFile points at a missing file
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
