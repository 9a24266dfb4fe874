package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// envHistoryDir names the variable holding the default history directory.
const envHistoryDir = "INVENTORY_SIM_HISTORY_DIR"

// loadEnv reads .env from the working directory, if any, and applies
// environment defaults to flags the user did not set.
func loadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Ignoring unreadable .env: %v", err)
	}
	if dir := os.Getenv(envHistoryDir); dir != "" {
		historyDir = dir
	}
}
