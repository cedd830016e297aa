package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/auth"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/config"
	v1 "github.com/Vivekpatel2007/Expense-Tracker/internal/controllers/v1"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/recurring"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// A .env file is optional, the environment itself takes precedence
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg := config.Load()

	// Create the data directory for the database file
	err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate the schema
	err = models.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	co := v1.Controller{
		Tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.TokenLifetime),
	}
	router.AttachRoutes(co, r.Group("/"))

	// The daily sweep generates all due recurring transactions and
	// removes expired budgets. It runs once at startup and then every
	// night shortly after midnight.
	go func() {
		runSweep()

		for {
			time.Sleep(untilNextSweep(time.Now()))
			runSweep()
		}
	}()

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

func runSweep() {
	now := time.Now()

	if _, err := recurring.RunDailySweep(models.DB, now); err != nil {
		log.Error().Err(err).Msg("daily sweep")
	}

	if _, err := models.CleanupBudgets(models.DB, now); err != nil {
		log.Error().Err(err).Msg("budget cleanup")
	}
}

// untilNextSweep returns the duration until five minutes past the next
// midnight so that a sweep always sees the new day.
func untilNextSweep(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
