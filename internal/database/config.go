package database

import "time"

type Config struct {
	// Persist run reports; when false the harnesses only print them
	Enabled bool `envconfig:"AVL_DB_ENABLED" default:"true"`
	// bbolt file holding the run reports
	FileName string `envconfig:"AVL_DB_FILENAME" default:"avlbench.db"`
	// Time to wait for the file lock held by another process
	OpenTimeout time.Duration `envconfig:"AVL_DB_OPEN_TIMEOUT" default:"1s"`
}
