// Command bridge_tester drives a running launcher bridge over its WebSocket
// the way a launcher would: one query, then optionally a selection.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gorilla/websocket"
)

var cli struct {
	Addr   string   `default:"127.0.0.1:49453" help:"Bridge address."`
	Select bool     `help:"Select the first result after rendering."`
	Text   []string `arg:"" help:"Query text."`
}

type message struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Items []struct {
		Kind        string          `json:"kind"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Icon        string          `json:"icon"`
		Action      json.RawMessage `json:"action,omitempty"`
	} `json:"items,omitempty"`
	Error string `json:"error,omitempty"`
}

func main() {
	kong.Parse(&cli, kong.Name("bridge_tester"))

	url := "ws://" + cli.Addr + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("Dial %s failed: %v", url, err)
	}
	defer conn.Close()
	log.Printf("Connected to %s", url)

	start := time.Now()
	reply := roundTrip(conn, message{Type: "query", Text: strings.Join(cli.Text, " ")})
	log.Printf("Received %q with %d items in %s", reply.Type, len(reply.Items), time.Since(start).Round(time.Millisecond))
	for i, item := range reply.Items {
		fmt.Printf("%2d [%s] %s\n    %s\n    %s\n", i, item.Kind, item.Name, item.Description, item.Icon)
	}

	if !cli.Select || len(reply.Items) == 0 || len(reply.Items[0].Action) == 0 {
		return
	}
	start = time.Now()
	reply = roundTrip(conn, message{Type: "select", Data: reply.Items[0].Action})
	log.Printf("Received %q after %s", reply.Type, time.Since(start).Round(time.Millisecond))
}

func roundTrip(conn *websocket.Conn, msg message) message {
	if err := conn.WriteJSON(msg); err != nil {
		log.Fatalf("Write failed: %v", err)
	}
	var reply message
	if err := conn.ReadJSON(&reply); err != nil {
		log.Fatalf("Read failed: %v", err)
	}
	if reply.Error != "" {
		log.Fatalf("Bridge error: %s", reply.Error)
	}
	return reply
}
