package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"CaffeineSentinel/internal/advisor"
	"CaffeineSentinel/internal/config"
	"CaffeineSentinel/internal/gateway"
	"CaffeineSentinel/internal/ledger"
	"CaffeineSentinel/internal/notifier"
	"CaffeineSentinel/internal/tracker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CaffeineSentinel tracker starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.ValidateTracker(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init ledger: server-backed when a token is configured, local-only otherwise
	var l *ledger.Ledger
	if cfg.Tracker.Token != "" {
		gw := gateway.NewHTTPGateway(cfg.Tracker.ServerURL, cfg.Tracker.Token, cfg.Proxy)
		l = ledger.NewLedger(gw, tn)
		if err := l.Load(context.Background()); err != nil {
			log.Fatalf("[FATAL] load ledger from %s: %v", gw.Name(), err)
		}
		log.Printf("[INFO] ledger loaded from %s", gw.Name())
	} else {
		l = ledger.NewLocalLedger(cfg.Tracker.DailyLimit, tn)
		log.Println("[INFO] running local-only, intakes will not be synced")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracker
	tr := tracker.NewTracker(ctx, l, advisor.NewRuleBased())
	if err := tr.Start(); err != nil {
		log.Fatalf("[FATAL] start tracker: %v", err)
	}
	defer tr.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, tr.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	log.Println("[INFO] CaffeineSentinel tracker is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CaffeineSentinel tracker stopped")
}
