package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	auth "Geospace/internal/auth"
	atterberg "Geospace/internal/calc/atterberg"
	gravity "Geospace/internal/calc/gravity"
	batch "Geospace/internal/calc/premium/batch"
	importer "Geospace/internal/calc/premium/importer"
	report "Geospace/internal/calc/report"
	config "Geospace/internal/config"
	project "Geospace/internal/project"
	repo "Geospace/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, store repo.Repository) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: store, SecureCookie: cfg.TLS()}
	projectH := &project.Handler{Store: store}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/project", projectH.Get).Methods("GET")
	secureApi.HandleFunc("/project", projectH.Update).Methods("PUT", "PATCH")

	atterbergH := &atterberg.Handler{Project: projectH.Current}
	gravityH := &gravity.Handler{Sessions: gravity.NewSessions()}
	reportH := &report.Handler{Project: projectH.Current}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{Project: projectH.Current}

	secureApi.HandleFunc("/tools/atterberg/calc", atterbergH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/atterberg/classify", atterbergH.Classify).Methods("POST")

	secureApi.HandleFunc("/tools/gravity/calc", gravityH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/gravity/density", gravityH.Density).Methods("GET")
	secureApi.HandleFunc("/tools/gravity/samples", gravityH.AddSample).Methods("POST")
	secureApi.HandleFunc("/tools/gravity/samples", gravityH.ListSamples).Methods("GET")
	secureApi.HandleFunc("/tools/gravity/samples", gravityH.ClearSamples).Methods("DELETE")
	secureApi.HandleFunc("/tools/gravity/samples/calc", gravityH.CalcSamples).Methods("POST")

	secureApi.HandleFunc("/tools/report/atterberg/pdf", reportH.Atterberg).Methods("POST")
	secureApi.HandleFunc("/tools/report/gravity/pdf", reportH.Gravity).Methods("POST")

	secureApi.HandleFunc("/tools-premium/batch/gravity", batchH.Gravity).Methods("POST")
	secureApi.HandleFunc("/tools-premium/import/atterberg", importerH.Atterberg).Methods("POST")
	secureApi.HandleFunc("/tools-premium/import/gravity", importerH.Gravity).Methods("POST")

	mux.PathPrefix("/").
		Handler(http.FileServer(http.Dir(cfg.StaticDir)))
}

func main() {
	configPath := flag.String("config", "geospace.ini", "path to the INI config file")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	} else {
		logrus.WithField("level", cfg.LogLevel).Warn("unknown log level, keeping info")
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := repo.Open(ctx, cfg.DatabaseURL, cfg.MaxOpenConns)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	defer db.Close()

	store := repo.NewPostgresUserDB(db)
	if err := store.EnsureSchema(ctx); err != nil {
		logrus.Fatalf("%v", err)
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, store)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: CORS(mux),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.WithFields(logrus.Fields{"addr": cfg.Addr, "tls": cfg.TLS()}).Info("starting server")
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logrus.Errorf("server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logrus.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("failed to stop server: %v", err)
	}
	wg.Wait()
	logrus.Info("server stopped")
}
