// Command seed fills the configured store with fake users and tweets for
// local development.
//
//	go run ./cmd/seed -users 100 -tweets 300
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/tweeter-backend/internal/bootstrap"
	"github.com/tbourn/tweeter-backend/internal/config"
	"github.com/tbourn/tweeter-backend/internal/sysutil"
)

func main() {
	users := flag.Int("users", 100, "number of users to create")
	tweets := flag.Int("tweets", 300, "number of tweets to create")
	seed := flag.Uint64("seed", 0, "faker seed (0 = random)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg(".env not loaded")
	}
	cfg := config.MustLoad()
	sysutil.InitLogger(cfg.LogLevel, cfg.LogPretty, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("store")
	}

	s := &seeder{store: store, faker: gofakeit.New(*seed)}
	res, err := s.run(ctx, *users, *tweets)
	_ = store.Close(context.Background())
	if err != nil {
		log.Fatal().Err(err).Int("users", res.Users).Int("tweets", res.Tweets).Msg("seed failed")
	}
	log.Info().Int("users", res.Users).Int("tweets", res.Tweets).Msg("seed complete")
}
