package emulator

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leksak/kilobyte-sub000/cpu"
)

// Config describes a machine and its initial state.
type Config struct {
	TextBytes int              `yaml:"text_bytes"` // Instruction memory, in bytes.
	DataBytes int              `yaml:"data_bytes"` // Data memory, in bytes.
	Verbose   bool             `yaml:"verbose"`
	Registers map[string]int32 `yaml:"registers"` // Register values after reset.
	Memory    map[int64]int32  `yaml:"memory"`    // Data memory words after reset, by byte address.
	Until     string           `yaml:"until"`     // Watch expression stopping Run.
}

// DefaultConfig is a 1000 byte instruction and data memory machine.
func DefaultConfig() *Config {
	return &Config{
		TextBytes: cpu.TEXT_MEMORY_SIZE,
		DataBytes: cpu.DATA_MEMORY_SIZE,
	}
}

// LoadConfig decodes YAML over the defaults.
func LoadConfig(input io.Reader) (cfg *Config, err error) {
	cfg = DefaultConfig()

	err = yaml.NewDecoder(input).Decode(cfg)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return
	}

	err = cfg.Validate()

	return
}

// ReadConfig loads a YAML configuration file.
func ReadConfig(path string) (cfg *Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	cfg, err = LoadConfig(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// Validate checks sizes and register names. Both memories hold at
// least 1000 bytes, and instruction memory is whole words.
func (cfg *Config) Validate() (err error) {
	if cfg.TextBytes < cpu.TEXT_MEMORY_SIZE || cfg.TextBytes%cpu.WORD_SIZE != 0 {
		err = errors.Join(ErrConfigSize, fmt.Errorf("text_bytes: %d", cfg.TextBytes))
		return
	}

	if cfg.DataBytes < cpu.DATA_MEMORY_SIZE {
		err = errors.Join(ErrConfigSize, fmt.Errorf("data_bytes: %d", cfg.DataBytes))
		return
	}

	for name := range cfg.Registers {
		_, err = cpu.LookupRegister(name)
		if err != nil {
			err = errors.Join(ErrConfigRegister, err)
			return
		}
	}

	return
}
