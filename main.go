package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"googlemaps.github.io/maps"

	"github.com/aerovital/navigator-api/api"
	"github.com/aerovital/navigator-api/atmosphere"
	"github.com/aerovital/navigator-api/background"
	"github.com/aerovital/navigator-api/cache"
	"github.com/aerovital/navigator-api/consts"
	"github.com/aerovital/navigator-api/external/gemini"
	"github.com/aerovital/navigator-api/external/openmeteo"
	"github.com/aerovital/navigator-api/external/pathway"
	"github.com/aerovital/navigator-api/gateway"
	"github.com/aerovital/navigator-api/geo"
	"github.com/aerovital/navigator-api/poller"
	"github.com/aerovital/navigator-api/store"
)

var (
	server       *api.Server
	profileStore store.AeroVitalStore
	aggregator   *poller.Aggregator
	jobManager   *background.Manager
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("aerovital")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if aggregator != nil {
			log.Info("Stopping polling aggregator")
			aggregator.Stop()
		}

		if jobManager != nil {
			log.Info("Stopping background jobs")
			jobManager.Stop()
		}

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if profileStore != nil {
			log.Info("Shutting down db store")
			profileStore.Close()
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.Connect(context.Background(), opts)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}
	profileStore = store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
	log.WithField("prefix", "init").Info("Initialized mongo store")

	// Providers: primary streaming endpoint plus the public fallback
	primary := pathway.New(viper.GetString("pathway.endpoint"))
	fallback := openmeteo.New(viper.GetString("openmeteo.endpoint"))
	dataGateway := gateway.New(primary, fallback)

	// Shared readings state and its single writer
	state := atmosphere.NewState()
	aggregator = poller.New(dataGateway, state, consts.PollInterval)

	// Alert hub and scheduled jobs
	hub := background.NewHub()
	jobManager = background.NewManager(state, hub)
	if err := jobManager.Start(); err != nil {
		log.Panicf("start background jobs with error: %s", err)
	}
	log.WithField("prefix", "init").Info("Initialized background jobs")

	// re-check for spikes on every committed reading, not just on schedule
	updates, _ := state.Subscribe()
	go func() {
		for range updates {
			jobManager.CheckSpikeNow()
		}
	}()

	// Offline cache store: redis when configured, in-process otherwise
	var cacheStore cache.Store
	if addr := viper.GetString("redis.conn"); addr != "" {
		cacheStore = cache.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: viper.GetString("redis.password"),
		}))
		log.WithField("prefix", "init").Info("Initialized redis cache store")
	} else {
		cacheStore = cache.NewMemoryStore()
		log.WithField("prefix", "init").Info("Redis not configured; using in-process cache store")
	}

	// Reverse geocoding, optional
	var resolver geo.LocationResolver = geo.NewStaticLocationResolver("Current Location")
	if key := viper.GetString("map.apikey"); key != "" {
		mapClient, err := maps.NewClient(maps.WithAPIKey(key))
		if err != nil {
			log.Panicf("init maps client with error: %s", err)
		}
		resolver = geo.NewGeocodingLocationResolver(mapClient)
	}

	analyzer := gemini.New(viper.GetString("gemini.apikey"), viper.GetString("gemini.endpoint"))

	// Init http server
	server = api.NewServer(
		profileStore,
		state,
		aggregator,
		hub,
		analyzer,
		resolver)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":"+viper.GetString("server.port"), func(next http.Handler) http.Handler {
		m := cache.New(next, cacheStore, viper.GetString("server.host"))
		m.Install(viper.GetStringSlice("cache.assets"))
		if err := m.Activate(); err != nil {
			log.WithError(err).Error("cache activation sweep failed")
		}
		return m
	}))
}
