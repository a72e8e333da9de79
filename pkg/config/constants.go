package config

const (
	// EnvPrefix namespaces all environment variables consumed by the service.
	EnvPrefix = "SERP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
