package huff

import (
	"os"
	"testing"

	"github.com/op/go-logging"
)

// The codec logs every dictionary at DEBUG, which is the library default.
func TestMain(m *testing.M) {
	logging.SetLevel(logging.WARNING, "huff")
	os.Exit(m.Run())
}
