package main

import (
	"context"
	"flag"
	"flight-emissions-service/internal/adapters/store"
	"flight-emissions-service/internal/config"
	"flight-emissions-service/internal/platform/db"
	"flight-emissions-service/internal/platform/obs"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
)

// dbtool prepares the estimate log schema and can print recent estimates.
func main() {
	list := flag.Int("list", 0, "print the N most recent estimates after initializing the schema")
	flag.Parse()

	envErr := godotenv.Load()
	logger := obs.NewLogger(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	if envErr != nil {
		logger.Info().Msg("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	logger.Info().Msg("Initializing database schema...")
	if err := store.InitSchema(ctx, conn); err != nil {
		logger.Fatal().Err(err).Msg("schema initialization failed")
	}
	logger.Info().Msg("Schema ready.")

	if *list <= 0 {
		return
	}

	recs, err := store.NewSQLEstimateLog(conn).ListRecentEstimates(ctx, *list)
	if err != nil {
		logger.Fatal().Err(err).Msg("list estimates failed")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tROUTE\tFLIGHT\tAIRCRAFT\tKM\tCO2 KG/PAX")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s-%s\t%s\t%s\t%.0f\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Origin, r.Destination,
			r.FlightCode, r.AircraftType, r.DistanceKm, r.CO2KgPerPassenger)
	}
	tw.Flush()
}
