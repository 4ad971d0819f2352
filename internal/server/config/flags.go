package config

import (
	"flag"
	"os"
	"time"

	"github.com/jtech/tasklist/internal/flagx"
	"github.com/jtech/tasklist/internal/server/models"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-dp string  task delete policy ("soft" or "hard")
//	-lp string  task list delete policy ("soft" or "hard")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration flags
// are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-r", "-dp", "-lp"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	taskDeletePolicy := fs.String("dp", string(config.TaskDeletePolicy), "task delete policy (soft|hard)")
	taskListDeletePolicy := fs.String("lp", string(config.TaskListDeletePolicy), "task list delete policy (soft|hard)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute

	dp, err := models.ParseDeletePolicy(*taskDeletePolicy)
	if err != nil {
		panic(err)
	}
	config.TaskDeletePolicy = dp

	lp, err := models.ParseDeletePolicy(*taskListDeletePolicy)
	if err != nil {
		panic(err)
	}
	config.TaskListDeletePolicy = lp
}
