package config

import (
	"bytes"
	"fmt"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
	"os"
	"reflect"
	"strings"
)

const (
	defSerialBaudRate  = 9600
	defSerialDataBits  = 8
	defSerialStopBits  = 1
	defMinimumReadSize = 5
	defSerialParity    = 0

	defTerminalWidth  = 80
	defTerminalHeight = 24

	defTouchSource = "auto"
	defTouchDevice = "/dev/input/event0"

	defLogLevel = "INFO"

	EnvVarPrefix = "TC"
)

var CLIConfig *Config
var replacer = strings.NewReplacer(".", "_")

type Config struct {
	Terminal *Terminal `mapstructure:"terminal"`
	Serial   *Serial   `mapstructure:"serial"`
	Touch    *Touch    `mapstructure:"touch"`
	Log      *Log      `mapstructure:"log"`
}

type Serial struct {
	PortName        string `mapstructure:"port_name"`
	BaudRate        int    `mapstructure:"baud_rate"`
	DataBits        int    `mapstructure:"data_bits"`
	StopBits        int    `mapstructure:"stop_bits"`
	Parity          int    `mapstructure:"parity"`
	MinimumReadSize int    `mapstructure:"minimum_read_size"`
}

type Terminal struct {
	// Fallback extent used when the terminal refuses a size query.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type Touch struct {
	// Source selects the sample provider: term, event, serial or auto.
	// Auto picks event when Device exists, term otherwise.
	Source    string `mapstructure:"source"`
	Device    string `mapstructure:"device"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

type Log struct {
	// File receives log output; logging to the terminal would corrupt
	// the button display, so an empty value disables logging entirely.
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Serial: &Serial{
			PortName:        "",
			BaudRate:        defSerialBaudRate,
			DataBits:        defSerialDataBits,
			StopBits:        defSerialStopBits,
			Parity:          defSerialParity,
			MinimumReadSize: defMinimumReadSize,
		},
		Terminal: &Terminal{
			Width:  defTerminalWidth,
			Height: defTerminalHeight,
		},
		Touch: &Touch{
			Source:    defTouchSource,
			Device:    defTouchDevice,
			TimeoutMS: 0,
		},
		Log: &Log{
			File:  "",
			Level: defLogLevel,
		},
	}
}

func NewConfig(cfgFile string) error {
	v := viper.New()

	CLIConfig = DefaultConfig()

	// set default values in viper.
	// Viper needs to know if a key exists in order to override it.
	// https://github.com/spf13/viper/issues/188
	if b, err := yaml.Marshal(DefaultConfig()); err != nil {
		return err
	} else {
		defaultConfig := bytes.NewReader(b)
		if err := v.MergeConfig(defaultConfig); err != nil {
			return err
		}
	}

	if cfgFile != "" {
		if fi, err := os.Stat(cfgFile); err == nil {
			if !fi.IsDir() {
				// overwrite values from config
				v.SetConfigType("yaml")
				v.SetConfigFile(cfgFile)
				if err := v.MergeInConfig(); err != nil {
					fmt.Printf("Unexpected error parsing config file [%s]. Error: %v\n", fi.Name(), err)
				}
			} else {
				fmt.Printf("Config file points to a directory, not a file [%s]\n", cfgFile)
			}
		} else {
			fmt.Printf("No config file found [%s], or unable to derive location. Error %v\n", cfgFile, err)
		}
	}

	// Use environment variables as final override
	v.AutomaticEnv()
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)

	// Preload environment bindings so they are processed on load
	bindVars(v, reflect.TypeOf(*CLIConfig), "")
	return v.Unmarshal(CLIConfig)
}

func bindVars(v *viper.Viper, t reflect.Type, prefix string) {

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag != "" {
			tag = prefix + strings.ToUpper(tag)

			if field.Type.Kind() == reflect.Struct {
				bindVars(v, field.Type, tag+".")
			} else if field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct {
				bindVars(v, field.Type.Elem(), tag+".")
			} else {
				if err := v.BindEnv(tag); err != nil {
					fmt.Printf("Unable to bind to environment variable: %s. Error: %v\n", tag, err)
				}
			}
		}
	}
}
