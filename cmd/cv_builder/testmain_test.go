package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain picks up CVB_* overrides from a .env in the package directory before the
// CLI tests run. Each test still pins its own store settings through cliEnv.
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}
