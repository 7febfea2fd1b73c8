package main

import (
	"connect4/experiments"
	"connect4/experiments/metrics"
	"connect4/meta"
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if getEnv("LOG_PRETTY", "true") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	configPath := flag.String("config", getEnv("TOURNAMENT_CONFIG", ""), "YAML tournament description")
	outDir := flag.String("out", getEnv("RESULTS_DIR", meta.OUTPUT_DIR), "Directory for experiment results")
	games := flag.Int("games", getEnvAsInt("GAMES", 0), "Games per match-up (overrides config)")
	goroutines := flag.Int("goroutines", getEnvAsInt("GOROUTINES", 0), "Games played in parallel (overrides config)")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := experiments.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load tournament config")
		}
		cfg = loaded
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *goroutines > 0 {
		cfg.Goroutines = *goroutines
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dir, err := experiments.Run(ctx, cfg, *outDir)
	if err != nil {
		log.Fatal().Err(err).Msg("tournament failed")
	}
	log.Info().Str("dir", dir).Msg("results written")
}

// defaultConfig pits two random agents against each other in both seatings.
func defaultConfig() experiments.Config {
	return experiments.Config{
		Name: "random_baseline",
		Agents: []metrics.AgentConfig{
			{ID: 1, Kind: metrics.RandomAgent, Seed: 1},
			{ID: 2, Kind: metrics.RandomAgent, Seed: 2},
		},
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(k string, def int) int {
	v, err := strconv.Atoi(getEnv(k, ""))
	if err != nil {
		return def
	}
	return v
}
