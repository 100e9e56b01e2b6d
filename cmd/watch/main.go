// Command main tails the feed event stream of a running server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

type event struct {
	Type      string          `json:"type"`
	Action    string          `json:"action,omitempty"`
	PostID    int64           `json:"post_id,omitempty"`
	CommentID int64           `json:"comment_id,omitempty"`
	Message   string          `json:"message,omitempty"`
	Target    string          `json:"target,omitempty"`
	Feed      json.RawMessage `json:"feed,omitempty"`
}

func main() {
	host := flag.String("host", "localhost:8080", "API server host")
	raw := flag.Bool("raw", false, "Print frames as received")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *host, Path: "/ws/feed"}
	log.Printf("📡 Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("❌ Dial failed: %v", err)
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("❌ Read failed: %v", err)
				}
				return
			}
			if *raw {
				fmt.Println(string(data))
				continue
			}
			var ev event
			if err := json.Unmarshal(data, &ev); err != nil {
				log.Printf("⚠️  Unreadable frame: %s", data)
				continue
			}
			fmt.Println(describe(ev))
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func describe(ev event) string {
	ts := time.Now().Format("15:04:05.000")
	switch ev.Type {
	case "feed.snapshot":
		var feed struct {
			Posts []json.RawMessage `json:"posts"`
		}
		_ = json.Unmarshal(ev.Feed, &feed)
		return fmt.Sprintf("%s snapshot  %d posts", ts, len(feed.Posts))
	case "feed.changed":
		if ev.CommentID != 0 {
			return fmt.Sprintf("%s changed   %s post=%d comment=%d", ts, ev.Action, ev.PostID, ev.CommentID)
		}
		return fmt.Sprintf("%s changed   %s post=%d", ts, ev.Action, ev.PostID)
	case "feedback.set":
		return fmt.Sprintf("%s feedback  %s", ts, ev.Message)
	case "feedback.cleared":
		return fmt.Sprintf("%s feedback  (cleared)", ts)
	case "highlight.post":
		return fmt.Sprintf("%s highlight post=%d", ts, ev.PostID)
	case "highlight.comment":
		return fmt.Sprintf("%s highlight comment=%d", ts, ev.CommentID)
	case "highlight.cleared":
		return fmt.Sprintf("%s highlight %s (cleared)", ts, ev.Target)
	default:
		return fmt.Sprintf("%s %s", ts, ev.Type)
	}
}
