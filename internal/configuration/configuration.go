// Package configuration reads the settings of the command-line tool from
// KEY=VALUE settings files.
package configuration

import (
	"fmt"
	"strconv"
	"strings"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation of the configuration services.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// ReadGeneric reads settings files into a map (map[key]value). Keys of later
// files override those of earlier ones.
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	envMap, err := c.GenericHandler.Read(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config-read) %w", err)
	}

	return envMap, nil
}

// MapKeyToString returns the value of key, or an empty string.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return strings.TrimSpace(value)
	}

	return ""
}

// MapKeyToInt returns the value of key as an int, or -1 if it is missing or
// malformed.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToUInt64 returns the value of key as an uint64, or 0 if it is
// missing or malformed.
func (c *Handler) MapKeyToUInt64(envMap map[string]string, key string) uint64 {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return 0
	}
	intValue, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}

	return intValue
}

// MapKeyToBool returns the value of key as a bool. Missing or malformed
// values return def.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string, def bool) bool {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return def
	}

	switch strings.ToLower(value) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}

	return boolValue
}

// MapKeyToList returns the comma separated elements of key, with blank
// elements removed.
func (c *Handler) MapKeyToList(envMap map[string]string, key string) []string {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return nil
	}

	var list []string

	for _, elem := range strings.Split(value, ",") {
		if elem = strings.TrimSpace(elem); elem != "" {
			list = append(list, elem)
		}
	}

	return list
}
