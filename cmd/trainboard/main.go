package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/trainboard/board"
	"github.com/theoremus-urban-solutions/trainboard/config"
	"github.com/theoremus-urban-solutions/trainboard/internal"
	"github.com/theoremus-urban-solutions/trainboard/predictor"
	"github.com/theoremus-urban-solutions/trainboard/server"
	"github.com/urfave/cli/v2"
)

const tickInterval = time.Second

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "trainboard",
		Usage: "Countdown board for trains passing a trackside waypoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config.yml (default: search config.yml, ./config/config.yml)",
			},
			&cli.StringFlag{
				Name:  "feed",
				Usage: "feed name from config feeds[]",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "feed URL or local file (overrides config)",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			oneshotCommand(),
			runCommand(),
			serveCommand(),
		},
	}
}

func setup(c *cli.Context) error {
	var err error
	if path := c.String("config"); path != "" {
		err = config.LoadAppConfigFromFile(path)
	} else {
		err = config.LoadAppConfig()
	}
	if err != nil {
		return err
	}
	return internal.InitLogging(config.Config.Log.Level, config.Config.Log.Format)
}

func newSourceFromFlags(c *cli.Context) *source {
	feedCfg := config.SelectFeed(c.String("feed"))
	if u := c.String("url"); u != "" {
		feedCfg.URL = u
	}
	return newSource(feedCfg, config.Config.Board.Retries())
}

func newLoop(c *cli.Context) *boardLoop {
	clock := predictor.SystemClock{}
	pred := predictor.New(config.Config.PredictorOptions(), clock)
	src := newSourceFromFlags(c)
	return newBoardLoop(pred, clock, src.fetch, config.Config.Board.Count, config.Config.Board.RefreshInterval())
}

func oneshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "oneshot",
		Usage: "fetch the feed once and print the board",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the board as JSON"},
		},
		Action: func(c *cli.Context) error {
			snap, err := newLoop(c).step(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return board.WriteJSON(os.Stdout, *snap)
			}
			return board.Render(os.Stdout, *snap)
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "keep the board on the console, refreshing the feed periodically",
		Action: func(c *cli.Context) error {
			p := &consolePublisher{out: os.Stdout}
			newLoop(c).run(c.Context, tickInterval, p.publish)
			log.Info().Msg("Shutdown signal received")
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the board loop and expose it over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Usage: "listen port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			port := config.Config.Server.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}
			store := server.NewStore()
			srv := server.New(port, store)
			srv.Start()

			newLoop(c).run(c.Context, tickInterval, storePublisher(store))

			log.Info().Msg("Shutdown signal received")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}
