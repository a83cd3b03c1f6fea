package realtime

import (
	"io"
	"sync"

	"github.com/gorilla/websocket"
)

// wsConn io.ReadWriteCloser поверх websocket для stomp.Connect
// Чтение склеивает сообщения в поток, каждый Write уходит отдельным текстовым сообщением
type wsConn struct {
	ws      *websocket.Conn
	current io.Reader

	writeMu sync.Mutex
}

func newWSConn(ws *websocket.Conn) *wsConn {
	return &wsConn{ws: ws}
}

func (c *wsConn) Read(p []byte) (int, error) {
	for {
		if c.current == nil {
			_, r, err := c.ws.NextReader()
			if err != nil {
				return 0, err
			}
			c.current = r
		}

		n, err := c.current.Read(p)
		if err == io.EOF {
			c.current = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// Write frame.Writer сбрасывает буфер один раз на фрейм
func (c *wsConn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}

// stompLogger направляет журнал go-stomp в логгер хаба
type stompLogger struct {
	log Logger
}

func (l stompLogger) Debugf(string, ...interface{}) {}
func (l stompLogger) Debug(string)                  {}

func (l stompLogger) Infof(format string, v ...interface{}) {
	l.log.Info("realtime: stomp: "+format, v...)
}

func (l stompLogger) Info(message string) {
	l.log.Info("realtime: stomp: %s", message)
}

func (l stompLogger) Warningf(format string, v ...interface{}) {
	l.log.Warn("realtime: stomp: "+format, v...)
}

func (l stompLogger) Warning(message string) {
	l.log.Warn("realtime: stomp: %s", message)
}

func (l stompLogger) Errorf(format string, v ...interface{}) {
	l.log.Error("realtime: stomp: "+format, v...)
}

func (l stompLogger) Error(message string) {
	l.log.Error("realtime: stomp: %s", message)
}
