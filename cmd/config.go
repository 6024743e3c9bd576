package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// BusinessLocation decides which calendar day an order belongs to.
	BusinessLocation *time.Location

	HubQueueSize      int
	HubObserverBuffer int
	HubWriteTimeout   time.Duration
	HubPingSchedule   string
	HubStatsSchedule  string
	StreamKeepalive   time.Duration
}

// DSN builds the postgres connection string. Sessions run in UTC so that
// business dates round-trip unchanged.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
