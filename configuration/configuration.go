package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	DefaultPool       string `usage:"pool created on startup, empty to skip"`
	Capacity          int    `usage:"initial group capacity for new pools"`
	StatsFile         string `usage:"file where pool stats are written on shutdown"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	EnableAccessLog   bool   `usage:"log every request to stdout"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:        "127.0.0.1:8080",
		DefaultPool:     "default",
		Capacity:        1000,
		EnableAccessLog: true,
		ShowBanner:      true,
		ShowConfig:      false,
	}
}
