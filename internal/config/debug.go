package config

import "os"

func IsDebug() bool {
	return os.Getenv("PROVOST_DEBUG") == "1"
}
