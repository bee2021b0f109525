package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "realty-escrow/internal/adapter/http"
	"realty-escrow/internal/adapter/middleware"
	"realty-escrow/internal/adapter/repository/mysql"
	"realty-escrow/internal/config"
	approvalDomain "realty-escrow/internal/domain/approval"
	assetDomain "realty-escrow/internal/domain/asset"
	ledgerDomain "realty-escrow/internal/domain/ledger"
	listingDomain "realty-escrow/internal/domain/listing"
	"realty-escrow/internal/infrastructure/cache"
	"realty-escrow/internal/infrastructure/db"
	escrowUC "realty-escrow/internal/usecase/escrow"
	listingUC "realty-escrow/internal/usecase/listing"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&listingDomain.Listing{},
		&approvalDomain.Approval{},
		&ledgerDomain.Entry{},
		&assetDomain.Asset{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	listings := mysql.NewListingRepository(gdb)
	ledgerRepo := mysql.NewLedgerRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	listingUc := listingUC.NewUsecase(listings, guow, cfg.EscrowVaultAddr)
	escrowUc := escrowUC.NewUsecase(guow, ledgerRepo)

	h := httpadp.NewHandler()
	lh := httpadp.NewListingHandler(listingUc)
	eh := httpadp.NewEscrowHandler(escrowUc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// reads
	e.GET("/health", h.Health)
	e.GET("/listings/:asset_id", lh.GetListing)
	e.GET("/listings/:asset_id/balance", eh.GetListingBalance)
	e.GET("/balance", eh.GetBalance)

	// mutations, behind the idempotency guard
	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	m := e.Group("", idemp)
	m.POST("/listings", lh.CreateListing)
	m.POST("/listings/:asset_id/deposit", eh.Deposit)
	m.POST("/listings/:asset_id/inspection", eh.UpdateInspection)
	m.POST("/listings/:asset_id/approve", eh.Approve)
	m.POST("/listings/:asset_id/finalize", eh.Finalize)
	m.POST("/listings/:asset_id/cancel", eh.Cancel)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
