package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"go-carewatch/config"
	"go-carewatch/cronjobs"
	"go-carewatch/db"
	"go-carewatch/insights"
	"go-carewatch/lifecycle"
	"go-carewatch/notify"
	"go-carewatch/poller"
	"go-carewatch/routes"
	"go-carewatch/types"
	"go-carewatch/weather"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	// Weather provider and notification derivation
	weatherClient := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout)
	if !weatherClient.Credentialed() {
		log.Println("WEATHER_API_KEY not set; polls will serve offline fallback snapshots")
	}

	notificationStore := notify.NewStore(cfg.Poller.Retention)
	mirror := func(n types.Notification) {
		if err := db.SaveNotifications(firestoreClient, []types.Notification{n}); err != nil {
			log.Printf("Failed to mirror notification %s: %v", n.ID, err)
		}
	}

	envPoller := poller.New(weatherClient, notificationStore, mirror)
	defer envPoller.Stop()

	// Initialize cron jobs
	cronRunner := cronjobs.InitCronJobs(envPoller, cfg.Poller.Locations, cfg.Poller.CronSpec)
	defer cronRunner.Stop()

	// Initial poll so the dashboard has data before the first tick
	for _, location := range cfg.Poller.Locations {
		go envPoller.PollLocation(context.Background(), location)
	}

	// Insight generation
	generator := insights.NewOpenAIGenerator(cfg.OpenAI.APIKey)
	if generator == nil {
		log.Println("OPENAI_API_KEY not set; insights will use the rule-based fallback")
	}
	insightService := insights.NewService(generator)

	// Recommendation lifecycle backed by Firestore
	recommendationStore := lifecycle.NewStore(db.NewRecommendationStore(firestoreClient))

	r := routes.SetupRouter(routes.Deps{
		Notifications:   notificationStore,
		Insights:        insightService,
		Recommendations: recommendationStore,
		Weather:         weatherClient,
		Poller:          envPoller,
	})
	if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
