package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ValidateConfig checks that the loaded configuration is usable. Database
// credentials come from the environment or secret files; an empty password is
// rejected in production only, since local setups often run trust auth.
func ValidateConfig(cfg *Config) error {
	if err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.ServerPort, validation.Required, is.Port),
		validation.Field(&cfg.DBHost, validation.Required),
		validation.Field(&cfg.DBPort, validation.Required, is.Port),
		validation.Field(&cfg.DBUser, validation.Required),
		validation.Field(&cfg.DBName, validation.Required),
		validation.Field(&cfg.DBSSLMode, validation.Required,
			validation.In("disable", "require", "verify-ca", "verify-full")),
		validation.Field(&cfg.ResultLimit, validation.Min(0)),
	); err != nil {
		return err
	}

	if IsProduction() {
		return validation.ValidateStruct(cfg,
			validation.Field(&cfg.DBPassword, validation.Required),
		)
	}
	return nil
}
