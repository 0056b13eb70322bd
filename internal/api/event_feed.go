package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world"
)

const (
	feedBuffer     = 256
	feedWriteWait  = 5 * time.Second
	feedReadWait   = 60 * time.Second
	feedPingPeriod = 30 * time.Second
)

// EventMessage: событие мира в JSON для внешнего просмотрщика
type EventMessage struct {
	Type  string    `json:"type"`
	Cell  *vec.Vec3 `json:"cell,omitempty"`
	Block string    `json:"block,omitempty"`
	Drop  string    `json:"drop,omitempty"`
	Chunk *vec.Vec2 `json:"chunk,omitempty"`
	Cells int       `json:"cells,omitempty"`
}

func newEventMessage(e world.Event) EventMessage {
	msg := EventMessage{Type: e.Type.String()}
	switch e.Type {
	case world.EventTypeBlockRemoved, world.EventTypeBlockAdded:
		cell := e.Pos
		msg.Cell = &cell
		msg.Block = e.Block.String()
		if e.Type == world.EventTypeBlockRemoved {
			msg.Drop = e.Drop.String()
		}
	default:
		chunk := e.Chunk
		msg.Chunk = &chunk
		msg.Cells = e.Cells
	}
	return msg
}

// EventFeed раздаёт события мира подписчикам по WebSocket.
// HandleWorldEvent вызывается из горутины тика и никогда не блокируется:
// медленный подписчик теряет события.
type EventFeed struct {
	mu      sync.Mutex
	nextID  uint64
	subs    map[uint64]chan []byte
	closed  bool
	dropped uint64

	upgrader websocket.Upgrader
}

// NewEventFeed создаёт пустую ленту событий
func NewEventFeed() *EventFeed {
	return &EventFeed{
		subs: make(map[uint64]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleWorldEvent реализует world.EventSink
func (f *EventFeed) HandleWorldEvent(e world.Event) {
	payload, err := json.Marshal(newEventMessage(e))
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	for _, ch := range f.subs {
		select {
		case ch <- payload:
		default:
			f.dropped++
		}
	}
}

// Subscribers возвращает число активных подписчиков
func (f *EventFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Dropped возвращает число событий, не доставленных медленным подписчикам
func (f *EventFeed) Dropped() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

// Close отключает всех подписчиков
func (f *EventFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.subs {
		close(ch)
		delete(f.subs, id)
	}
}

func (f *EventFeed) subscribe() (uint64, <-chan []byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, nil, false
	}
	f.nextID++
	ch := make(chan []byte, feedBuffer)
	f.subs[f.nextID] = ch
	return f.nextID, ch, true
}

func (f *EventFeed) unsubscribe(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.subs[id]; ok {
		close(ch)
		delete(f.subs, id)
	}
}

// handleWS поднимает WebSocket и пишет в него события до отключения клиента
func (f *EventFeed) handleWS(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id, events, ok := f.subscribe()
	if !ok {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"), time.Now().Add(time.Second))
		return
	}
	defer f.unsubscribe(id)

	// Читатель нужен только для control-кадров и обнаружения закрытия
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(feedReadWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(feedReadWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(feedPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			return
		case payload, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "bye"), time.Now().Add(time.Second))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
