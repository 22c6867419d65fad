package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("HAGWON_TEST_MODE") == "" {
			_ = os.Setenv("HAGWON_TEST_MODE", "1")
		}
	})
}
