package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"

	"sweetcrumb-bakery-api/config"
	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/handlers"
	"sweetcrumb-bakery-api/middleware"
	"sweetcrumb-bakery-api/queue"
	"sweetcrumb-bakery-api/services/auth"
	"sweetcrumb-bakery-api/services/email"
	"sweetcrumb-bakery-api/worker"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Responder imediatamente para OPTIONS
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		// Registrar apenas requisições com duração longa ou erros
		elapsed := time.Since(start)
		if elapsed > 500*time.Millisecond || wrapper.status >= 400 {
			log.Printf(
				"%s %s %s %d %v",
				r.Method,
				r.RequestURI,
				r.RemoteAddr,
				wrapper.status,
				elapsed,
			)
		}
	})
}

func main() {
	// Configurar logging com timestamp preciso
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds | log.LUTC)

	numCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(numCPU)
	log.Printf("Server starting with %d CPUs available", numCPU)

	cfg := config.Load()
	log.Printf("Configuration loaded successfully")

	// Conectar ao banco de dados com retry
	var db *database.Connection
	var err error
	for retries := 0; retries < 5; retries++ {
		db, err = database.NewConnection(cfg.Database)
		if err == nil {
			break
		}
		retryDelay := time.Duration(retries+1) * time.Second
		log.Printf("Failed to connect to database (attempt %d/5): %v. Retrying in %v...",
			retries+1, err, retryDelay)
		time.Sleep(retryDelay)
	}

	if err != nil {
		log.Fatalf("Failed to connect to database after retries: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.GetDB().PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Successfully connected to database")

	// Inicializar fila Redis
	jobQueue, err := queue.NewQueue(cfg.Redis.URL, "notification_jobs")
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer jobQueue.Close()
	log.Println("Successfully connected to Redis")

	rateLimiter, err := middleware.NewRateLimiter(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}
	defer rateLimiter.Close()

	// Inicializar serviços
	emailService := email.NewSMTPService(cfg.SMTP)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, db)

	// Iniciar o worker de notificações
	workerConcurrency := cfg.Redis.WorkerConcurrency
	if workerConcurrency < 2 {
		workerConcurrency = 2
	} else if workerConcurrency > 8 {
		workerConcurrency = 8 // Limitar para evitar sobrecarga
	}

	notificationWorker := worker.NewWorker(jobQueue, db, emailService)
	notificationWorker.Start(workerConcurrency)
	defer notificationWorker.Stop()
	log.Printf("Started notification worker with %d threads", workerConcurrency)

	// Inicializar handlers
	authHandler := handlers.NewAuthHandler(jwtService)
	productHandler := handlers.NewProductHandler(db)
	comboHandler := handlers.NewComboHandler(db)
	cartHandler := handlers.NewCartHandler(db, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, cfg, jobQueue)
	orderHandler := handlers.NewOrderHandler(db, jobQueue)
	requestHandler := handlers.NewRequestHandler(db, jobQueue)
	offerHandler := handlers.NewOfferHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	newsletterHandler := handlers.NewNewsletterHandler(db, jobQueue)
	settingsHandler := handlers.NewSettingsHandler(db)

	requireAuth := middleware.AuthMiddleware(jwtService)
	optionalAuth := middleware.OptionalAuth(jwtService)

	// Configurar o router
	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(loggingMiddleware)
	router.Use(middleware.SecurityHeadersMiddleware)
	router.Use(rateLimiter.RateLimitMiddleware())

	api := router.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/refresh", authHandler.RefreshToken).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/validate", authHandler.ValidateToken).Methods("GET", "OPTIONS")

	// Catálogo público
	api.HandleFunc("/products", productHandler.ListProducts).Methods("GET", "OPTIONS")
	api.HandleFunc("/products/{id}", productHandler.GetProduct).Methods("GET", "OPTIONS")
	api.HandleFunc("/combos", comboHandler.ListCombos).Methods("GET", "OPTIONS")
	api.HandleFunc("/combos/{id}", comboHandler.GetCombo).Methods("GET", "OPTIONS")

	// Carrinho (sessão por cookie); GET aceita token opcional para mostrar o
	// desconto de registro
	api.Handle("/cart", optionalAuth(http.HandlerFunc(cartHandler.GetCart))).Methods("GET", "OPTIONS")
	api.HandleFunc("/cart", cartHandler.AddToCart).Methods("POST", "OPTIONS")
	api.HandleFunc("/cart", cartHandler.UpdateCart).Methods("PUT", "OPTIONS")
	api.HandleFunc("/cart/remove", cartHandler.RemoveFromCart).Methods("POST", "OPTIONS")
	api.HandleFunc("/cart/delivery-mode", cartHandler.SetDeliveryMode).Methods("POST", "OPTIONS")
	api.HandleFunc("/cart/promo", cartHandler.ApplyPromo).Methods("POST", "OPTIONS")

	// Checkout e pedidos
	api.Handle("/checkout", optionalAuth(http.HandlerFunc(checkoutHandler.Checkout))).Methods("POST", "OPTIONS")
	api.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods("GET", "OPTIONS")
	api.Handle("/orders", requireAuth(http.HandlerFunc(orderHandler.ListMyOrders))).Methods("GET", "OPTIONS")

	// Encomendas de bolo personalizado
	api.HandleFunc("/custom-requests", requestHandler.CreateRequest).Methods("POST", "OPTIONS")
	api.HandleFunc("/custom-requests/{id}", requestHandler.GetRequest).Methods("GET", "OPTIONS")
	api.Handle("/custom-requests", requireAuth(http.HandlerFunc(requestHandler.ListMyRequests))).Methods("GET", "OPTIONS")

	// Promoções, avaliações, newsletter e conteúdo
	api.HandleFunc("/offers/validate", offerHandler.ValidateOffer).Methods("POST", "OPTIONS")
	api.HandleFunc("/reviews", reviewHandler.CreateReview).Methods("POST", "OPTIONS")
	api.HandleFunc("/reviews", reviewHandler.ListReviews).Methods("GET", "OPTIONS")
	api.HandleFunc("/newsletter/subscribe", newsletterHandler.Subscribe).Methods("POST", "OPTIONS")
	api.HandleFunc("/settings", settingsHandler.GetSettings).Methods("GET", "OPTIONS")
	api.HandleFunc("/hero", settingsHandler.GetHero).Methods("GET", "OPTIONS")

	// Back office
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(requireAuth)
	admin.Use(middleware.RequireAdmin())

	admin.HandleFunc("/orders", orderHandler.ListOrders).Methods("GET", "OPTIONS")
	admin.HandleFunc("/orders/{id}/status", orderHandler.UpdateOrderStatus).Methods("POST", "OPTIONS")
	admin.HandleFunc("/orders/{id}/cancel", orderHandler.CancelOrder).Methods("POST", "OPTIONS")

	admin.HandleFunc("/custom-requests", requestHandler.ListRequests).Methods("GET", "OPTIONS")
	admin.HandleFunc("/custom-requests/{id}/status", requestHandler.UpdateRequestStatus).Methods("POST", "OPTIONS")
	admin.HandleFunc("/custom-requests/{id}/cancel", requestHandler.CancelRequest).Methods("POST", "OPTIONS")

	admin.HandleFunc("/products", productHandler.ListAllProducts).Methods("GET", "OPTIONS")
	admin.HandleFunc("/products", productHandler.CreateProduct).Methods("POST", "OPTIONS")
	admin.HandleFunc("/products/{id}", productHandler.UpdateProduct).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/products/{id}", productHandler.DeleteProduct).Methods("DELETE", "OPTIONS")

	admin.HandleFunc("/combos", comboHandler.ListAllCombos).Methods("GET", "OPTIONS")
	admin.HandleFunc("/combos", comboHandler.CreateCombo).Methods("POST", "OPTIONS")
	admin.HandleFunc("/combos/{id}", comboHandler.UpdateCombo).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/combos/{id}", comboHandler.DeleteCombo).Methods("DELETE", "OPTIONS")

	admin.HandleFunc("/offers", offerHandler.ListOffers).Methods("GET", "OPTIONS")
	admin.HandleFunc("/offers", offerHandler.CreateOffer).Methods("POST", "OPTIONS")
	admin.HandleFunc("/offers/{id}", offerHandler.UpdateOffer).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/offers/{id}", offerHandler.DeleteOffer).Methods("DELETE", "OPTIONS")

	admin.HandleFunc("/reviews", reviewHandler.ListAllReviews).Methods("GET", "OPTIONS")
	admin.HandleFunc("/reviews/{id}/approve", reviewHandler.ApproveReview).Methods("POST", "OPTIONS")
	admin.HandleFunc("/reviews/{id}", reviewHandler.DeleteReview).Methods("DELETE", "OPTIONS")

	admin.HandleFunc("/subscribers", newsletterHandler.ListSubscribers).Methods("GET", "OPTIONS")
	admin.HandleFunc("/settings", settingsHandler.UpdateSettings).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/hero", settingsHandler.UpdateHero).Methods("PUT", "OPTIONS")

	// Registrar hora de início para cálculo de uptime
	startTime := time.Now()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		health := struct {
			Status    string `json:"status"`
			Time      string `json:"time"`
			Database  string `json:"database"`
			Redis     string `json:"redis"`
			Uptime    string `json:"uptime"`
			GoVersion string `json:"go_version"`
		}{
			Status:    "ok",
			Time:      time.Now().Format(time.RFC3339),
			Database:  "connected",
			Redis:     "connected",
			Uptime:    fmt.Sprintf("%v", time.Since(startTime)),
			GoVersion: runtime.Version(),
		}

		dbCtx, dbCancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer dbCancel()

		if err := db.GetDB().PingContext(dbCtx); err != nil {
			health.Status = "degraded"
			health.Database = "error"
		}

		redisCtx, redisCancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer redisCancel()

		if err := jobQueue.Client().Ping(redisCtx).Err(); err != nil {
			health.Status = "degraded"
			health.Redis = "error"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	}).Methods("GET")

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	<-stop
	log.Println("Shutdown signal received, gracefully shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	log.Println("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Stopping notification worker...")
	notificationWorker.Stop()

	// Tempo para workers finalizarem
	time.Sleep(2 * time.Second)

	log.Println("Closing database connections...")
	db.Close()

	log.Println("Closing Redis connections...")
	jobQueue.Close()

	log.Println("Server exited properly")
}
