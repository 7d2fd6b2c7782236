// Package main provides a stress testing tool for the live feed WebSocket server.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// Metrics tracks the test results
type Metrics struct {
	ConnectionsAttempted int64
	ConnectionsSuccess   int64
	ConnectionsFailed    int64
	MessagesSent         int64
	MessagesReceived     int64
	Errors               int64
}

var metrics Metrics

func main() {
	host := flag.String("host", "localhost:8480", "API server host")
	token := flag.String("token", "", "Bearer token for the test user")
	clients := flag.Int("clients", 50, "Number of concurrent clients")
	duration := flag.Duration("duration", 30*time.Second, "Test duration")
	maxProjectID := flag.Int("max-project", 100, "Highest project ID to toggle likes on")
	flag.Parse()

	if *token == "" {
		log.Fatal("❌ -token is required")
	}

	log.Printf("🚀 Starting Feed Stress Test")
	log.Printf("Target: %s", *host)
	log.Printf("Clients: %d", *clients)
	log.Printf("Duration: %v", *duration)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	stopChan := make(chan struct{})

	for i := 0; i < *clients; i++ {
		wg.Add(1)
		go runClient(*host, *token, *maxProjectID, stopChan, &wg)
		time.Sleep(50 * time.Millisecond) // Stagger connections
	}

	select {
	case <-time.After(*duration):
		log.Println("⏱️  Test duration reached")
	case <-interrupt:
		log.Println("🛑 Interrupted by user")
	}

	close(stopChan)
	log.Println("Waiting for clients to disconnect...")
	wg.Wait()

	printMetrics()
}

func runClient(host, token string, maxProjectID int, stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	u := url.URL{
		Scheme:   "ws",
		Host:     host,
		Path:     "/api/ws/",
		RawQuery: "token=" + url.QueryEscape(token),
	}

	atomic.AddInt64(&metrics.ConnectionsAttempted, 1)
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		atomic.AddInt64(&metrics.ConnectionsFailed, 1)
		return
	}
	atomic.AddInt64(&metrics.ConnectionsSuccess, 1)
	defer func() { _ = conn.Close() }()

	// Drain server pushes so the read buffer never backs up.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			atomic.AddInt64(&metrics.MessagesReceived, 1)
		}
	}()

	ticker := time.NewTicker(time.Duration(500+rand.Intn(1500)) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			var cmd map[string]any
			switch rand.Intn(3) {
			case 0:
				cmd = map[string]any{"type": "feed.refresh", "sort": randomSort()}
			case 1:
				cmd = map[string]any{
					"type":            "like.toggle",
					"project_id":      rand.Intn(maxProjectID) + 1,
					"currently_liked": rand.Intn(2) == 0,
				}
			default:
				cmd = map[string]any{"type": "inbox.open"}
			}

			payload, _ := json.Marshal(cmd)
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				atomic.AddInt64(&metrics.Errors, 1)
				return
			}
			atomic.AddInt64(&metrics.MessagesSent, 1)
		}
	}
}

func randomSort() string {
	sorts := []string{"newest", "top_voted", "trending"}
	return sorts[rand.Intn(len(sorts))]
}

func printMetrics() {
	log.Println("📊 Results")
	log.Printf("Connections attempted: %d", atomic.LoadInt64(&metrics.ConnectionsAttempted))
	log.Printf("Connections succeeded: %d", atomic.LoadInt64(&metrics.ConnectionsSuccess))
	log.Printf("Connections failed:    %d", atomic.LoadInt64(&metrics.ConnectionsFailed))
	log.Printf("Messages sent:         %d", atomic.LoadInt64(&metrics.MessagesSent))
	log.Printf("Messages received:     %d", atomic.LoadInt64(&metrics.MessagesReceived))
	log.Printf("Errors:                %d", atomic.LoadInt64(&metrics.Errors))
}
