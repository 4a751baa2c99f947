package server

import (
	"fmt"
	"net/http"
	"sync"
)

// Broadcaster fans out server-sent events to every connected client
type Broadcaster struct {
	m       sync.Mutex
	clients map[chan string]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan string]struct{}),
	}
}

func (b *Broadcaster) addClient(ch chan string) {
	b.m.Lock()
	b.clients[ch] = struct{}{}
	b.m.Unlock()
}

func (b *Broadcaster) removeClient(ch chan string) {
	b.m.Lock()
	defer b.m.Unlock()

	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
}

// Clients returns the number of connected clients
func (b *Broadcaster) Clients() int {
	b.m.Lock()
	defer b.m.Unlock()
	return len(b.clients)
}

// Broadcast sends msg to every client. Clients that are still busy with the
// previous message miss this one.
func (b *Broadcaster) Broadcast(msg string) {
	b.m.Lock()
	for ch := range b.clients {
		select {
		case ch <- msg:
		default:
		}
	}
	b.m.Unlock()
}

func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	msgCh := make(chan string, 1)
	b.addClient(msgCh)
	defer b.removeClient(msgCh)

	fmt.Fprint(w, ":ok\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-msgCh:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: update\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

var _ http.Handler = (*Broadcaster)(nil)
