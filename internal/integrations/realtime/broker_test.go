package realtime

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-stomp/stomp/v3/frame"
	"github.com/gorilla/websocket"
)

// fakeBroker минимальный STOMP-брокер поверх websocket для тестов
type fakeBroker struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu            sync.Mutex
	conns         map[*brokerConn]struct{}
	rejectConnect bool
	messageSeq    int

	connects    chan *frame.Frame
	subscribed  chan string
	disconnects chan string
	closed      chan struct{}
}

type brokerConn struct {
	ws     *wsConn
	reader *frame.Reader

	writeMu sync.Mutex
	writer  *frame.Writer

	mu   sync.Mutex
	subs map[string]string // destination -> subscription id
}

func newBrokerConn(ws *websocket.Conn) *brokerConn {
	conn := newWSConn(ws)
	return &brokerConn{
		ws:     conn,
		reader: frame.NewReader(conn),
		writer: frame.NewWriter(conn),
		subs:   make(map[string]string),
	}
}

func (bc *brokerConn) write(f *frame.Frame) error {
	bc.writeMu.Lock()
	defer bc.writeMu.Unlock()
	return bc.writer.Write(f)
}

func newFakeBroker(t *testing.T) *fakeBroker {
	t.Helper()
	b := &fakeBroker{
		conns:      make(map[*brokerConn]struct{}),
		connects:    make(chan *frame.Frame, 32),
		subscribed:  make(chan string, 32),
		disconnects: make(chan string, 32),
		closed:      make(chan struct{}, 32),
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(func() {
		b.dropAll()
		b.server.Close()
	})
	return b
}

func (b *fakeBroker) url() string {
	return "ws" + strings.TrimPrefix(b.server.URL, "http") + "/ws"
}

func (b *fakeBroker) setRejectConnect(reject bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejectConnect = reject
}

func (b *fakeBroker) serve(w http.ResponseWriter, r *http.Request) {
	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	bc := newBrokerConn(ws)

	b.mu.Lock()
	b.conns[bc] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.conns, bc)
		b.mu.Unlock()
		_ = bc.ws.Close()
		b.closed <- struct{}{}
	}()

	for {
		f, err := bc.reader.Read()
		if err != nil {
			return
		}
		if f == nil {
			continue
		}

		switch f.Command {
		case frame.CONNECT:
			b.connects <- f
			b.mu.Lock()
			reject := b.rejectConnect
			b.mu.Unlock()
			if reject {
				_ = bc.write(frame.New(frame.ERROR, frame.Message, "access denied"))
				return
			}
			_ = bc.write(frame.New(frame.CONNECTED, frame.Version, "1.2"))
		case frame.SUBSCRIBE:
			dest := f.Header.Get(frame.Destination)
			bc.mu.Lock()
			bc.subs[dest] = f.Header.Get(frame.Id)
			bc.mu.Unlock()
			b.subscribed <- dest
		case frame.DISCONNECT:
			if receipt := f.Header.Get(frame.Receipt); receipt != "" {
				_ = bc.write(frame.New(frame.RECEIPT, frame.ReceiptId, receipt))
				b.disconnects <- receipt
			}
			return
		}
	}
}

// publish рассылает MESSAGE всем подписанным соединениям, возвращает число получателей
func (b *fakeBroker) publish(dest, body string) int {
	b.mu.Lock()
	conns := make([]*brokerConn, 0, len(b.conns))
	for bc := range b.conns {
		conns = append(conns, bc)
	}
	b.messageSeq++
	seq := b.messageSeq
	b.mu.Unlock()

	delivered := 0
	for _, bc := range conns {
		bc.mu.Lock()
		subID, ok := bc.subs[dest]
		bc.mu.Unlock()
		if !ok {
			continue
		}

		msg := frame.New(frame.MESSAGE,
			frame.Destination, dest,
			frame.Subscription, subID,
			frame.MessageId, fmt.Sprintf("m-%d", seq),
			frame.ContentType, "application/json",
		)
		msg.Body = []byte(body)
		if bc.write(msg) == nil {
			delivered++
		}
	}
	return delivered
}

func (b *fakeBroker) connCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

func (b *fakeBroker) dropAll() {
	b.mu.Lock()
	conns := make([]*brokerConn, 0, len(b.conns))
	for bc := range b.conns {
		conns = append(conns, bc)
	}
	b.mu.Unlock()

	for _, bc := range conns {
		_ = bc.ws.Close()
	}
}
