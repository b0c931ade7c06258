package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	config := applyEnv(DefaultConfig())

	server := flag.String("server", config.ServerURL, "base URL of the game service")
	key := flag.String("key", config.APIKey, "API key identifying this player")
	name := flag.String("name", config.BotName, "display name to register")
	pollMs := flag.Int("poll-ms", config.PollIntervalMs, "delay between polling cycles in milliseconds")
	budget := flag.Int("budget", config.NodeBudget, "projected-node budget for the depth controller")
	practice := flag.Bool("practice", false, "run the local practice service instead of the bot")
	addr := flag.String("addr", config.PracticeAddr, "practice service listen address")
	practiceM := flag.Int("m", config.PracticeM, "practice board width")
	practiceN := flag.Int("n", config.PracticeN, "practice board height")
	practiceK := flag.Int("k", config.PracticeK, "practice win length")
	flag.Parse()

	config.ServerURL = *server
	config.APIKey = *key
	config.BotName = *name
	config.PollIntervalMs = *pollMs
	config.NodeBudget = *budget
	config.PracticeAddr = *addr
	config.PracticeM = *practiceM
	config.PracticeN = *practiceN
	config.PracticeK = *practiceK
	configStore.Update(config)

	if *practice {
		runPractice(config)
		return
	}
	if config.ServerURL == "" || config.APIKey == "" {
		log.Fatal("[mnk] -server and -key are required (or MNK_SERVER_URL / MNK_API_KEY)")
	}
	runBot(config)
}

// runBot is the outer polling loop: fetch a board, pick a move, post it,
// sleep, repeat. All blocking happens here at the system boundary; a move
// decision, once started, runs to completion.
func runBot(config Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := NewGameClient(config.ServerURL, config.APIKey)
	if err := client.SetName(ctx, config.BotName); err != nil {
		log.Printf("[mnk] set name failed: %v", err)
	} else {
		log.Printf("[mnk] registered as %q", config.BotName)
	}

	ticker := time.NewTicker(time.Duration(config.PollIntervalMs) * time.Millisecond)
	defer ticker.Stop()
	for {
		solveCycle(ctx, client, config)
		select {
		case <-ctx.Done():
			log.Printf("[mnk] shutting down: %v", ctx.Err())
			return
		case <-ticker.C:
		}
	}
}

func solveCycle(ctx context.Context, client *GameClient, config Config) {
	board, err := client.FetchBoard(ctx)
	if errors.Is(err, ErrNoBoard) {
		log.Printf("[mnk] no board to solve")
		return
	}
	if err != nil {
		log.Printf("[mnk] load board failed: %v", err)
		return
	}

	log.Printf("[mnk] solving %dx%d board, k=%d, %d empty", board.M(), board.N(), board.K(), board.CountEmpty())
	if config.LogBoards {
		fmt.Print(board.Render())
	}

	pos, ok := ChooseMove(board, config.NodeBudget)
	if !ok {
		log.Printf("[mnk] no move available, giving up on this board")
		return
	}
	if config.LogBoards {
		fmt.Print(board.CloneWithMove(CellMarker, pos).Render())
	}
	log.Printf("[mnk] sending move (%d,%d)", pos.X, pos.Y)
	if err := client.PostMove(ctx, pos); err != nil {
		log.Printf("[mnk] post move failed: %v", err)
	}
}

func runPractice(config Config) {
	hub := NewHub()
	practice := NewPracticeServer(config.PracticeM, config.PracticeN, config.PracticeK, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	server := &http.Server{
		Addr:    config.PracticeAddr,
		Handler: practice.Router(),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[practice] %dx%d k=%d game listening on %s", config.PracticeM, config.PracticeN, config.PracticeK, config.PracticeAddr)
	select {
	case <-sigCtx.Done():
		log.Printf("[practice] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("[practice] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[practice] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[practice] forced close failed: %v", closeErr)
		}
	}
}
