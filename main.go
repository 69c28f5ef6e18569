package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"farecast/config"
	"farecast/handlers"
	"farecast/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg)

	// Initialize models and the shared searcher
	services.InitModels(modelPaths(cfg))
	services.InitSearcher(services.NewSearcher(services.GetModelRegistry(), cfg.Seed, cfg.HasSeed))

	if err := newApp(cfg).Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:  "farecast",
		Usage: "Flight price prediction portal",
		Action: func(c *cli.Context) error {
			return serve(cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP server",
				Action: func(c *cli.Context) error {
					return serve(cfg)
				},
			},
			searchCommand(),
			{
				Name:  "models",
				Usage: "Check that every configured model artifact loads",
				Action: func(c *cli.Context) error {
					return checkModels(c.App.Writer, services.GetModelRegistry())
				},
			},
		},
	}
}

func checkModels(w io.Writer, reg *services.ModelRegistry) error {
	failed := 0
	for _, st := range reg.Status() {
		if st.Loaded {
			fmt.Fprintf(w, "ok    %-24s %s\n", st.Label, st.Path)
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL  %-24s %s\n", st.Label, st.Error)
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d model(s) failed to load", failed), 1)
	}
	return nil
}

func setupLogging(cfg *config.Config) {
	if !cfg.LogJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if cfg.Debug {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

func modelPaths(cfg *config.Config) map[services.ModelKind]string {
	paths := map[services.ModelKind]string{}
	for _, c := range services.ModelChoices {
		paths[c.Kind] = cfg.ModelPath(string(c.Kind))
	}
	return paths
}

func serve(cfg *config.Config) error {
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), handlers.Logger())
	r.SetHTMLTemplate(handlers.Templates())

	// CORS — allow configured frontend origins
	allowedOrigins := append([]string{"http://localhost:5173", "http://localhost:3000"}, cfg.FrontendURLs...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	r.GET("/", handlers.IndexHandler)
	r.POST("/search", handlers.FormSearchHandler)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)
		api.GET("/models", handlers.ModelsHandler)
		api.GET("/catalog", handlers.CatalogHandler)
		api.POST("/search", handlers.SearchHandler)
		api.POST("/search/pdf", handlers.DownloadHandler)
	}

	log.Info().Str("port", cfg.Port).Msg("farecast starting")
	return r.Run(":" + cfg.Port)
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Run one search and print the result cards",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "model", Value: string(services.DefaultModel), Usage: "random_forest, xgboost or neural_net"},
			&cli.StringFlag{Name: "source", Required: true},
			&cli.StringFlag{Name: "destination", Required: true},
			&cli.StringFlag{Name: "date", Value: time.Now().Format("2006-01-02"), Usage: "journey date YYYY-MM-DD"},
			&cli.StringFlag{Name: "dep", Value: services.DefaultDepTime, Usage: "departure HH:MM"},
			&cli.StringFlag{Name: "arr", Value: services.DefaultArrTime, Usage: "arrival HH:MM"},
			&cli.IntFlag{Name: "segments", Value: services.MinRouteSegments},
			&cli.StringFlag{Name: "info", Value: services.DefaultInfo},
			&cli.IntSliceFlag{Name: "stops", Value: cli.NewIntSlice(services.DefaultStops...)},
			&cli.StringSliceFlag{Name: "airline", Usage: "repeat to select several; default all"},
			&cli.IntFlag{Name: "min-price", Value: services.DefaultPriceMin},
			&cli.IntFlag{Name: "max-price", Value: services.DefaultPriceMax},
			&cli.StringFlag{Name: "time-slot", Value: services.DefaultTimeSlot},
		},
		Action: func(c *cli.Context) error {
			return runSearch(c.App.Writer, services.GetSearcher(), c)
		},
	}
}

// runSearch maps the search flags onto one search and prints the cards.
// Every failure exits 1 with the error text.
func runSearch(w io.Writer, s *services.Searcher, c *cli.Context) error {
	airlines := c.StringSlice("airline")
	if len(airlines) == 0 {
		airlines = services.Airlines
	}

	result, err := s.Search(c.Context, services.SearchInput{
		Model: c.String("model"),
		Trip: services.TripInput{
			Source:        c.String("source"),
			Destination:   c.String("destination"),
			JourneyDate:   c.String("date"),
			DepTime:       c.String("dep"),
			ArrTime:       c.String("arr"),
			RouteSegments: c.Int("segments"),
			InfoCategory:  c.String("info"),
		},
		Filters: services.FilterInput{
			Stops:    c.IntSlice("stops"),
			Airlines: airlines,
			PriceMin: c.Int("min-price"),
			PriceMax: c.Int("max-price"),
			TimeSlot: c.String("time-slot"),
		},
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return services.RenderText(w, result.Results)
}
