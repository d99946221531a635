package binance

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/thetrueharvey/mono-trading/internal/binance/memorystore"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSClient handles the WebSocket connection to the Binance kline streams
// and message routing.
type WSClient struct {
	url         string
	token       string // interval wire token, e.g. "1m"
	conn        *websocket.Conn
	handler     func([]byte)
	symbolStore *memorystore.SymbolStore
	logger      *zap.Logger
	nextID      atomic.Int64
}

// NewWSClient creates a WebSocket client for the given stream URL. The
// interval token selects the kline stream granularity for every symbol in
// the store.
func NewWSClient(url, token string, store *memorystore.SymbolStore, logger *zap.Logger) *WSClient {
	return &WSClient{
		url:         url,
		token:       token,
		symbolStore: store,
		logger:      logger,
	}
}

// SetMessageHandler sets the function to handle incoming messages.
func (c *WSClient) SetMessageHandler(h func([]byte)) {
	c.handler = h
}

// Connect establishes the WebSocket connection and subscribes to the kline
// stream of every symbol currently in the store. It does not start the
// listener.
func (c *WSClient) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		c.logger.Error("failed to connect to WebSocket", zap.String("url", c.url), zap.Error(err))
		return err
	}
	c.conn = conn
	c.logger.Info("WebSocket connected", zap.String("url", c.url))

	if err := c.subscribe(conn); err != nil {
		c.logger.Error("failed to send subscription", zap.Error(err))
		return err
	}
	return nil
}

// Listen reads messages until the connection drops, then reconnects and
// resubscribes indefinitely.
func (c *WSClient) Listen() {
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			c.logger.Error("WebSocket read error", zap.Error(err))

			for {
				time.Sleep(3 * time.Second)
				if err := c.reconnectAndResubscribe(); err != nil {
					c.logger.Warn("retrying reconnect...")
					continue
				}
				c.logger.Info("reconnected successfully")
				break
			}
			continue
		}

		if c.handler != nil {
			c.handler(msg)
		}
	}
}

func (c *WSClient) subscribe(conn *websocket.Conn) error {
	// "params": []string{"btcusdt@kline_1m"}
	subMsg := map[string]interface{}{
		"method": "SUBSCRIBE",
		"params": c.streamNames(),
		"id":     c.nextID.Add(1),
	}
	if err := conn.WriteJSON(subMsg); err != nil {
		return fmt.Errorf("websocket subscribe failed: %w", err)
	}
	return nil
}

func (c *WSClient) reconnectAndResubscribe() error {
	newConn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return err
	}

	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = newConn

	return c.subscribe(newConn)
}

// streamNames regenerates the stream list from the current symbol set, so
// reconnects pick up symbols added since the last subscription. Binance
// stream names are lowercase.
func (c *WSClient) streamNames() []string {
	symbols := c.symbolStore.GetAll()
	names := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		names = append(names, fmt.Sprintf("%s@kline_%s", strings.ToLower(symbol), c.token))
	}
	return names
}
