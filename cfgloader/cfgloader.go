// Package cfgloader loads and validates configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	envVariable = "ENVIRONMENT"
)

// MustLoad is like Load but logs the failure and exits the process.
func MustLoad[T any](opts ...Option) T {
	config, err := Load[T](opts...)
	if err != nil {
		slog.Error("[cfgloader]: " + err.Error())
		os.Exit(1)
	}
	return config
}

// Load reads ${dir}/${ENVIRONMENT}.yaml into T.
//
// Steps, in order: optional .env file, ENVIRONMENT lookup, ${VAR} expansion,
// yaml decoding, `default:` tags (creasty/defaults) and `validate:` tags
// (go-playground/validator).
//
//	type Config struct {
//	    Host string `yaml:"host" validate:"required"`
//	    Port int    `yaml:"port" default:"8080"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var config T

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if reflect.ValueOf(config).Kind() == reflect.Ptr {
		return config, errx.New("type argument must not be a pointer")
	}

	_ = godotenv.Load()

	env := os.Getenv(envVariable)
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return config, errx.New(
			"ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test",
			errx.WithDetails(errx.D{"environment": env}),
		)
	}

	path := filepath.Join(o.Dir, env+".yaml")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, errx.New(
			fmt.Sprintf("config file not found in the path %s", path),
			errx.WithDetails(errx.D{"environment": env}),
		)
	}
	if err != nil {
		return config, errx.Wrap(err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err)
	}

	if err = validateConfig(&config, env); err != nil {
		return config, err
	}

	if !o.Silent {
		printConfig(config)
	}

	return config, nil
}

func validateConfig(config any, env string) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors) //nolint: errorlint // validator returns the concrete type
	if !ok {
		return errx.Wrap(err)
	}

	failedFields := make([]string, 0, len(errs))
	for _, fe := range errs {
		tagErr := fe.Tag()
		if fe.Param() != "" {
			tagErr += "=" + fe.Param()
		}
		failedFields = append(failedFields, fmt.Sprintf("%s: %s", fe.Namespace(), tagErr))
	}

	return errx.New(
		fmt.Sprintf("invalid fields in %s config -> %s", env, strings.Join(failedFields, ",  ")),
	)
}
