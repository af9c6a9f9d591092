package env

import (
	"os"
	"strconv"
)

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}

// Timeout is the TIKZED_TIMEOUT override in seconds for external processes.
func Timeout() (int, bool) {
	if s := os.Getenv("TIKZED_TIMEOUT"); s != "" {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return int(i), true
		}
	}
	return -1, false
}
