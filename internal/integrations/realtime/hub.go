package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-stomp/stomp/v3"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// DefaultReconnectDelay фиксированная пауза между попытками переподключения
	DefaultReconnectDelay = 5 * time.Second

	// disconnectTimeout ожидание RECEIPT на DISCONNECT
	disconnectTimeout = time.Second
)

// Handler обработчик сообщений топика, вызывается на горутине топика
type Handler func(Message)

// Hub держит по одному соединению на топик и раздаёт сообщения подписчикам
// Соединение топика живёт, пока на него есть хотя бы одна подписка
type Hub struct {
	url            string
	dialer         Dialer
	tokens         TokenSource
	reconnectDelay time.Duration
	log            Logger
	metrics        Metrics

	mu     sync.Mutex
	topics map[string]*topicLoop
	nextID uint64
	closed bool
}

// Option настройка хаба
type Option func(*Hub)

// WithReconnectDelay задаёт паузу переподключения
func WithReconnectDelay(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.reconnectDelay = d
		}
	}
}

// WithMetrics включает метрики канала
func WithMetrics(m Metrics) Option {
	return func(h *Hub) {
		h.metrics = m
	}
}

// WithDialer подменяет websocket-dialer
func WithDialer(d Dialer) Option {
	return func(h *Hub) {
		h.dialer = d
	}
}

// NewHub создает хаб для websocket-эндпоинта брокера
func NewHub(wsURL string, tokens TokenSource, log Logger, opts ...Option) *Hub {
	h := &Hub{
		url:            wsURL,
		dialer:         websocket.DefaultDialer,
		tokens:         tokens,
		reconnectDelay: DefaultReconnectDelay,
		log:            log,
		topics:         make(map[string]*topicLoop),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type topicLoop struct {
	topic  string
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.RWMutex
	handlers map[uint64]Handler
}

func (l *topicLoop) snapshot() []Handler {
	l.mu.RLock()
	defer l.mu.RUnlock()

	handlers := make([]Handler, 0, len(l.handlers))
	for _, h := range l.handlers {
		handlers = append(handlers, h)
	}
	return handlers
}

// Subscription подписка на топик
type Subscription struct {
	hub   *Hub
	topic string
	id    uint64
	once  sync.Once
}

// Topic топик подписки
func (s *Subscription) Topic() string {
	return s.topic
}

// Unsubscribe снимает подписку; последняя подписка топика закрывает соединение
// Повторный вызов ничего не делает
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.unsubscribe(s.topic, s.id)
	})
}

// Subscribe подписывает обработчик на топик
// Первый подписчик запускает цикл соединения, остальные его разделяют
func (h *Hub) Subscribe(topic string, handler Handler) (*Subscription, error) {
	if topic == "" {
		return nil, ErrInvalidTopic
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	loop, ok := h.topics[topic]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		loop = &topicLoop{
			topic:    topic,
			cancel:   cancel,
			done:     make(chan struct{}),
			handlers: make(map[uint64]Handler),
		}
		h.topics[topic] = loop
		go h.run(ctx, loop)
		h.setActiveTopics()
		h.log.Info("realtime: topic=%s loop started", topic)
	}

	h.nextID++
	id := h.nextID
	loop.mu.Lock()
	loop.handlers[id] = handler
	loop.mu.Unlock()

	return &Subscription{hub: h, topic: topic, id: id}, nil
}

func (h *Hub) unsubscribe(topic string, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	loop, ok := h.topics[topic]
	if !ok {
		return
	}

	loop.mu.Lock()
	delete(loop.handlers, id)
	remaining := len(loop.handlers)
	loop.mu.Unlock()

	if remaining > 0 {
		return
	}

	delete(h.topics, topic)
	loop.cancel()
	h.setActiveTopics()
	h.log.Info("realtime: topic=%s last subscriber left, loop stopped", topic)
}

// Close останавливает все топики и дожидается завершения циклов
// Нельзя вызывать из обработчика сообщений
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	loops := make([]*topicLoop, 0, len(h.topics))
	for topic, loop := range h.topics {
		loops = append(loops, loop)
		delete(h.topics, topic)
	}
	h.setActiveTopics()
	h.mu.Unlock()

	for _, loop := range loops {
		loop.cancel()
	}
	for _, loop := range loops {
		<-loop.done
	}
	h.log.Info("realtime: hub closed, %d topics stopped", len(loops))
}

// ActiveTopics число топиков с живым циклом
func (h *Hub) ActiveTopics() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics)
}

// setActiveTopics вызывается под h.mu
func (h *Hub) setActiveTopics() {
	if h.metrics != nil {
		h.metrics.SetActiveTopics(len(h.topics))
	}
}

// run цикл соединения топика: ошибки логируются, подписчикам не передаются
func (h *Hub) run(ctx context.Context, loop *topicLoop) {
	defer close(loop.done)
	kind := topicKind(loop.topic)

	for {
		err := h.session(ctx, loop, kind)
		if ctx.Err() != nil {
			return
		}

		h.log.Warn("realtime: topic=%s connection lost: %v, reconnecting in %s", loop.topic, err, h.reconnectDelay)
		if h.metrics != nil {
			h.metrics.RealtimeReconnect(kind)
		}

		timer := time.NewTimer(h.reconnectDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// session одно соединение: CONNECT, SUBSCRIBE, чтение MESSAGE до ошибки или отмены
func (h *Hub) session(ctx context.Context, loop *topicLoop, kind string) error {
	header := http.Header{}
	token := h.token()
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	ws, _, err := h.dialer.DialContext(ctx, h.url, header)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrConnect, h.url, err)
	}
	defer ws.Close()

	conn, err := h.connect(ctx, ws, token)
	if err != nil {
		return err
	}

	sub, err := conn.Subscribe(destination(loop.topic), stomp.AckAuto, stomp.SubscribeOpt.Id(uuid.NewString()))
	if err != nil {
		_ = conn.MustDisconnect()
		return fmt.Errorf("%w: send SUBSCRIBE: %v", ErrConnect, err)
	}
	h.log.Info("realtime: topic=%s subscribed", loop.topic)

	for {
		select {
		case <-ctx.Done():
			if err := conn.Disconnect(); err != nil {
				h.log.Warn("realtime: topic=%s disconnect: %v", loop.topic, err)
			}
			return ctx.Err()
		case m, ok := <-sub.C:
			if !ok {
				return fmt.Errorf("%w: subscription closed", ErrConnect)
			}
			if m.Err != nil {
				return fmt.Errorf("%w: read: %v", ErrConnect, m.Err)
			}
			if h.metrics != nil {
				h.metrics.RealtimeMessage(kind)
			}
			msg := Message{Topic: loop.topic, Body: m.Body}
			for _, handler := range loop.snapshot() {
				handler(msg)
			}
		}
	}
}

// connect выполняет STOMP CONNECT; отмена ctx закрывает сокет и прерывает ожидание CONNECTED
func (h *Hub) connect(ctx context.Context, ws *websocket.Conn, token string) (*stomp.Conn, error) {
	opts := []func(*stomp.Conn) error{
		stomp.ConnOpt.AcceptVersion(stomp.V12),
		stomp.ConnOpt.Host(hostOf(h.url)),
		stomp.ConnOpt.HeartBeat(0, 0),
		stomp.ConnOpt.DisconnectReceiptTimeout(disconnectTimeout),
		stomp.ConnOpt.Logger(stompLogger{log: h.log}),
	}
	if token != "" {
		opts = append(opts, stomp.ConnOpt.Header("Authorization", "Bearer "+token))
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = ws.Close()
		case <-done:
		}
	}()

	conn, err := stomp.Connect(newWSConn(ws), opts...)
	if err != nil {
		var stompErr stomp.Error
		if errors.As(err, &stompErr) && stompErr.Frame != nil {
			return nil, fmt.Errorf("%w: connect rejected: %s", ErrProtocol, stompErr.Message)
		}
		return nil, fmt.Errorf("%w: await CONNECTED: %v", ErrConnect, err)
	}
	return conn, nil
}

func (h *Hub) token() string {
	if h.tokens == nil {
		return ""
	}
	return h.tokens.Token()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "localhost"
	}
	return u.Hostname()
}
