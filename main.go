package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/cache"
	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/dao"
	"github.com/gidf/donations.api.gidf.org.et/handlers"
	"github.com/gidf/donations.api.gidf.org.et/service"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.Namespace = "donations.api.gidf.org.et"

	cfg, err := config.Get()
	if err != nil {
		log.Error(fmt.Errorf("error configuring service: [%v]. Exiting", err), nil)
		os.Exit(1)
	}

	mongoService := dao.NewMongoService(cfg)

	mailer, err := service.NewGomailSender(cfg)
	if err != nil {
		log.Error(fmt.Errorf("error configuring mail sender: [%v]. Exiting", err), nil)
		os.Exit(1)
	}
	outbox := service.NewNotificationOutbox(mailer, 100)

	donationService := &service.DonationService{
		DAO:    mongoService,
		Config: cfg,
		Outbox: outbox,
	}

	providers := map[string]service.PaymentProviderService{
		service.PaymentMethodChapa:   service.NewChapaService(*donationService),
		service.PaymentMethodArifPay: service.NewArifPayService(*donationService),
	}
	if cfg.PaypalClientID != "" {
		paypalClient, err := service.GetPayPalClient(*cfg)
		if err != nil {
			log.Error(fmt.Errorf("error creating paypal client: [%v]", err))
		} else {
			providers[service.PaymentMethodPayPal] = &service.PayPalService{
				Client:          paypalClient,
				DonationService: *donationService,
			}
		}
	}
	donationService.Providers = providers

	messageService := &service.MessageService{
		DAO:    mongoService,
		Config: cfg,
		Outbox: outbox,
	}

	memCache := cache.NewMemoryCache()
	apiConfigService := &service.APIConfigService{
		DAO:    mongoService,
		Config: cfg,
		Cache:  memCache,
		Outbox: outbox,
	}

	if err := apiConfigService.InitializeBankAPIs(); err != nil {
		log.Error(fmt.Errorf("error seeding bank credential registry: [%v]", err))
	}

	scheduler, err := service.NewScheduler(apiConfigService, memCache)
	if err != nil {
		log.Error(fmt.Errorf("error creating scheduler: [%v]. Exiting", err), nil)
		os.Exit(1)
	}

	mainRouter := mux.NewRouter()
	handlers.Register(mainRouter, cfg, donationService, apiConfigService, messageService)

	server := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: mainRouter,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting donations API", log.Data{"bind_addr": cfg.BindAddr, "environment": cfg.Environment})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("error starting server: [%v]", err)
		}
		return nil
	})

	group.Go(func() error {
		return outbox.Run(groupCtx)
	})

	scheduler.Start()

	<-groupCtx.Done()
	log.Info("shutting down")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Errorf("error shutting down server: [%v]", err))
	}

	if err := group.Wait(); err != nil {
		log.Error(err)
	}

	if err := mongoService.Close(shutdownCtx); err != nil {
		log.Error(fmt.Errorf("error closing datastore connection: [%v]", err))
	}

	log.Info("shutdown complete")
}
