// Package config resolves runtime settings from the environment, optionally
// seeded from a .env file.
package config

const envPrefix = "CRIMELINKER_"

const (
	EnvAddr           = envPrefix + "ADDR"
	EnvRPCSocket      = envPrefix + "RPC_SOCKET"
	EnvDBDriver       = envPrefix + "DB_DRIVER"
	EnvDBDSN          = envPrefix + "DB_DSN"
	EnvDebug          = envPrefix + "DEBUG"
	EnvEvidenceBucket = envPrefix + "EVIDENCE_S3_BUCKET"
	EnvEvidenceRegion = envPrefix + "EVIDENCE_S3_REGION"
	EnvEvidenceURL    = envPrefix + "EVIDENCE_S3_ENDPOINT"
	EnvEvidencePath   = envPrefix + "EVIDENCE_S3_PATH_STYLE"
)

type Evidence struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// Enabled reports whether evidence files should go to object storage.
func (e Evidence) Enabled() bool { return e.Bucket != "" }

type Config struct {
	Addr      string
	RPCSocket string
	DBDriver  string
	DBDSN     string
	Debug     bool
	Evidence  Evidence
}

func Default() Config {
	return Config{
		Addr:      ":8080",
		RPCSocket: "/tmp/crimelinker.sock",
		DBDriver:  "sqlite",
		DBDSN:     "crimelinker.db",
		Evidence:  Evidence{Region: "us-east-1"},
	}
}

// FromEnv overlays CRIMELINKER_* variables on the defaults.
func FromEnv() Config {
	d := Default()
	return Config{
		Addr:      GetEnvString(EnvAddr, d.Addr),
		RPCSocket: GetEnvString(EnvRPCSocket, d.RPCSocket),
		DBDriver:  GetEnvString(EnvDBDriver, d.DBDriver),
		DBDSN:     GetEnvString(EnvDBDSN, d.DBDSN),
		Debug:     GetEnvBool(EnvDebug, d.Debug),
		Evidence: Evidence{
			Bucket:    GetEnvString(EnvEvidenceBucket, d.Evidence.Bucket),
			Region:    GetEnvString(EnvEvidenceRegion, d.Evidence.Region),
			Endpoint:  GetEnvString(EnvEvidenceURL, d.Evidence.Endpoint),
			PathStyle: GetEnvBool(EnvEvidencePath, d.Evidence.PathStyle),
		},
	}
}
