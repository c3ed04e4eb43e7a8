// Manual soak client: creates a lobby (or joins an existing one) and spams
// it with guesses and strokes from N fake players.
//
//	go run ./cmd/loadtest 8 [lobbyCode]
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

const (
	createURL = "http://localhost:3000/lobby/create"
	wsURL     = "ws://localhost:3000/ws"
)

type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: loadtest <clients> [lobbyCode]")
	}
	numClients, err := strconv.Atoi(os.Args[1])
	if err != nil {
		log.Fatal("invalid client count:", err)
	}

	var code string
	if len(os.Args) >= 3 {
		code = os.Args[2]
		fmt.Println("joining lobby:", code)
	} else {
		code = createLobby()
		fmt.Println("created lobby:", code)
	}

	for i := 0; i < numClients; i++ {
		go connectAndSpam(code, fmt.Sprintf("player%d", i))
	}

	select {}
}

func createLobby() string {
	body, _ := json.Marshal(map[string]any{"name": "loadtest", "maxPlayers": 16})
	resp, err := http.Post(createURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatal("create lobby:", err)
	}
	defer resp.Body.Close()

	var res struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		log.Fatal("bad create response:", err)
	}
	return res.Code
}

func connectAndSpam(code, name string) {
	url := fmt.Sprintf("%s/%s?name=%s", wsURL, code, name)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Println("dial:", err)
		return
	}
	defer conn.Close()

	// Drain server events so the connection stays healthy.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	fmt.Printf("%s joined\n", name)

	messages := []wsMessage{
		{Type: "guess", Data: json.RawMessage(fmt.Sprintf(`{"text":"guess from %s"}`, name))},
		{Type: "stroke", Data: json.RawMessage(`{"strokeColor":"#000000","strokeWidth":3,"paths":[{"x":10,"y":20}]}`)},
		{Type: "start_game", Data: json.RawMessage(`{}`)},
	}

	for i := 0; i < 200; i++ {
		msg := messages[rand.Intn(len(messages))]
		raw, _ := json.Marshal(msg)
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			log.Printf("write error for %s: %v", name, err)
			return
		}
		time.Sleep(time.Duration(100+rand.Intn(900)) * time.Millisecond)
	}

	fmt.Printf("%s done\n", name)
}
