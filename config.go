package serializer

import (
	"go.uber.org/zap"

	"github.com/Wire-Network/sdk-core-sub000/encio"
	"github.com/Wire-Network/sdk-core-sub000/encode"
)

// Config defines configuration for a single encode or decode call.
// A nil *Config is valid and means the defaults.
type Config struct {
	// CustomTypes are codecs for types the builtins don't cover, e.g. asset or public_key.
	// They replace builtins of the same name.
	CustomTypes []encode.Codec

	// NativeTypes maps struct names to Go types. Structs with a registered Go type are decoded into that type
	// rather than into a map.
	NativeTypes NativeTypes

	// StrictExtensions makes absent binary extensions decode to their default value instead of nil.
	StrictExtensions bool

	// AllowInvalidUTF8 lets strings that aren't valid UTF-8 decode, with a warning.
	AllowInvalidUTF8 bool

	// Logger receives debug messages about tolerated input. If nil, encio.Warnings is used.
	Logger *zap.Logger
}

func (c *Config) copyAndFill() *Config {
	config := new(Config)
	if c != nil {
		*config = *c
	}

	if config.Logger == nil {
		config.Logger = encio.Warnings
	}

	return config
}
