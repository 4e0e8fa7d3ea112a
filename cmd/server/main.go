package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/config"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/notify"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/router"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/service"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/store"
)

func main() {
	dev := flag.Bool("dev", false, "run against an in-memory store, no Postgres or broker needed")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	var (
		stores   router.Stores
		orderDB  service.OrderStore
		closeDB  func()
		notifier notify.Notifier = notify.LogNotifier{}
	)

	if *dev {
		mem := store.NewMemory()
		// Dev login: owner / password123.
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash dev password: %v", err)
		}
		if _, err := mem.CreateOwner(ctx, "owner", string(hash)); err != nil {
			log.Fatalf("create dev owner: %v", err)
		}
		log.Println("Running in dev mode: in-memory store, owner/password123")

		stores = router.Stores{Categories: mem, Items: mem, Orders: mem, Settings: mem, Owners: mem}
		orderDB = mem
		closeDB = func() {}
	} else {
		db, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		log.Println("Connected to database")

		stores = router.Stores{Categories: db, Items: db, Orders: db, Settings: db, Owners: db}
		orderDB = db
		closeDB = db.Close
	}
	defer closeDB()

	if cfg.AMQPURL != "" {
		n, err := notify.NewAMQPNotifier(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("Unable to connect to message broker: %v", err)
		}
		defer n.Close()
		notifier = n
		log.Println("Connected to message broker")
	}

	orders := service.NewOrderService(orderDB, notifier)
	r := router.New(cfg, stores, orders)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
