package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/database/mongoclient"
	"github.com/treesdao/goapi/base/database/redisclient"
	"github.com/treesdao/goapi/base/log"
	"github.com/treesdao/goapi/base/metrics"
	bValidator "github.com/treesdao/goapi/base/validator"
	"github.com/treesdao/goapi/domain"
	mmiddleware "github.com/treesdao/goapi/middleware"
	"github.com/treesdao/goapi/service/chain"
	"github.com/treesdao/goapi/service/chain/contract"
	"github.com/treesdao/goapi/service/query"
	"github.com/treesdao/goapi/service/redis"
	auth_delivery "github.com/treesdao/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/treesdao/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/treesdao/goapi/stores/auth/usecase"
	feepolicy_delivery "github.com/treesdao/goapi/stores/feepolicy/delivery/http"
	feepolicy_repository "github.com/treesdao/goapi/stores/feepolicy/repository"
	feepolicy_usecase "github.com/treesdao/goapi/stores/feepolicy/usecase"
	hc_delivery "github.com/treesdao/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/treesdao/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/treesdao/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/treesdao/goapi/stores/listing/delivery/http"
	listing_repository "github.com/treesdao/goapi/stores/listing/repository"
	listing_usecase "github.com/treesdao/goapi/stores/listing/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	signerKeys := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		signerKeys[chainId] = networks.GetString(fmt.Sprintf("%s.signerKey", k))
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:    rpcs,
		SignerKeys: signerKeys,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}

	chainId := domain.ChainId(viper.GetInt32("ledger.chainId"))
	operator := domain.Address(viper.GetString("ledger.operator")).ToLower()
	treasury := domain.Address(viper.GetString("ledger.treasury")).ToLower()
	registryService := contract.NewErc721Registry(chainService)
	payoutService := chain.NewPayout(chainService)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	feePolicyRepo := feepolicy_repository.New(q)
	listingRepo := listing_repository.NewListingRepo(q)
	activityRepo := listing_repository.NewActivityRepo(q)

	hc := hc_usecase.New(hcRepo)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	feePolicy := feepolicy_usecase.New(&feepolicy_usecase.FeePolicyUseCaseCfg{
		Repo:     feePolicyRepo,
		Operator: operator,
		Treasury: treasury,
	})
	listing := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo:  listingRepo,
		ActivityRepo: activityRepo,
		FeePolicyUC:  feePolicy,
		Registry:     registryService,
		Payout:       payoutService,
		TxnRunner:    q,
		Operator:     operator,
		ChainId:      chainId,
	})

	authMiddleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	feepolicy_delivery.New(e, authMiddleware, feePolicy, chainId)
	listing_delivery.New(e, authMiddleware, listing, chainId)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
