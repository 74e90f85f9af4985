package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"shopmart/cart"
	"shopmart/catalog"
	carthandlers "shopmart/handlers/api/cart"
	"shopmart/handlers/api/health"
	"shopmart/handlers/api/products"
	appmiddleware "shopmart/middleware"
	"shopmart/session"
	"shopmart/stores"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func rateLimit() func(http.Handler) http.Handler {
	requestsPerMinute := 120
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			requestsPerMinute = n
		} else {
			logrus.WithField("RATE_LIMIT_RPM", v).Warn("Invalid rate limit, using default")
		}
	}
	return httprate.LimitByIP(requestsPerMinute, time.Minute)
}

func setupRouter(cat *catalog.Catalog, svc *cart.Service, startedAt time.Time) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.SecureHeaders)
	r.Use(rateLimit())

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "X-CSRF-Token", "Origin", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Use(appmiddleware.Audit)
			r.Get("/", products.HandleList(cat))
			r.Get("/{id}", products.HandleGet(cat))
			r.Get("/search/{query}", products.HandleSearch(cat))
			r.Get("/filter/price", products.HandleFilterByPrice(cat))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(appmiddleware.Session)
			r.Use(appmiddleware.Audit)
			r.Use(appmiddleware.NoStore)
			r.Get("/", carthandlers.HandleGet(svc))
			r.Get("/total", carthandlers.HandleTotal(svc))
			r.Post("/add", carthandlers.HandleAdd(svc))
			r.Post("/remove", carthandlers.HandleRemove(svc))
			r.Post("/clear", carthandlers.HandleClear(svc))
		})

		r.Get("/health", health.Handle(startedAt))
	})

	return r
}

func waitForShutdown() {
	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	logrus.Info("Shutting down...")
	os.Exit(0)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	listenAddress := flag.String("listen", ":3000", "The address to listen on.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	session.Init()
	cat := catalog.Default()
	store := stores.GetStore()
	svc := cart.NewService(cat, store)

	startedAt := time.Now()
	r := setupRouter(cat, svc, startedAt)

	logrus.WithField("addr", *listenAddress).Info("starting server")
	go func() {
		if err := http.ListenAndServe(*listenAddress, r); err != nil {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	waitForShutdown()
}
