package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"event_ticketing/config"
	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	stockConnections = make(map[uint]map[*websocket.Conn]bool)
	stockMutex       sync.Mutex

	redisClient   *redis.Client
	redisInitOnce sync.Once
)

type TierStockUI struct {
	TierId         uint    `json:"tierId"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	InitialStock   int     `json:"initialStock"`
	RemainingStock int     `json:"remainingStock"`
	SoldOut        bool    `json:"soldOut"`
}

func getRedisClient() *redis.Client {
	redisInitOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
		go subscribeStockChannel()
	})
	return redisClient
}

// Listener duy nhất cho kênh event:* trên Redis, fan-out về các WS room
func subscribeStockChannel() {
	pubsub := redisClient.PSubscribe(context.Background(), "event:*")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		idStr := strings.TrimPrefix(msg.Channel, "event:")
		id64, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}
		deliverToRoom(uint(id64), []byte(msg.Payload))
	}
}

func deliverToRoom(eventId uint, payload []byte) {
	stockMutex.Lock()
	defer stockMutex.Unlock()
	for conn := range stockConnections[eventId] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(stockConnections[eventId], conn)
		}
	}
}

// WebSocket handler cho tồn kho vé theo sự kiện
func StockWebsocket(c *websocket.Conn) {
	eventIdStr := c.Params("eventId")
	id64, err := strconv.ParseUint(eventIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid eventId: %s", eventIdStr)
		c.Close()
		return
	}
	eventId := uint(id64)

	getRedisClient()

	// Thêm connection vào room
	stockMutex.Lock()
	if stockConnections[eventId] == nil {
		stockConnections[eventId] = make(map[*websocket.Conn]bool)
	}
	stockConnections[eventId][c] = true
	stockMutex.Unlock()

	log.Printf("New WS connection for event %d. Total connections: %d", eventId, len(stockConnections[eventId]))

	defer func() {
		stockMutex.Lock()
		delete(stockConnections[eventId], c)
		if len(stockConnections[eventId]) == 0 {
			delete(stockConnections, eventId)
		}
		stockMutex.Unlock()
		c.Close()
	}()

	// Gửi ngay trạng thái tồn kho hiện tại cho client mới connect
	stock, err := FetchEventStock(eventId)
	if err == nil {
		c.WriteJSON(stock)
	}

	// Loop giữ connection
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

func FetchEventStock(eventId uint) ([]TierStockUI, error) {
	var tiers []model.PriceTier
	err := database.DB.
		Where("event_id = ? AND active = ?", eventId, true).
		Order("price asc").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}

	result := make([]TierStockUI, 0, len(tiers))
	for _, t := range tiers {
		result = append(result, TierStockUI{
			TierId:         t.ID,
			Name:           t.Name,
			Price:          t.Price,
			InitialStock:   t.InitialStock,
			RemainingStock: t.RemainingStock,
			SoldOut:        t.RemainingStock <= 0,
		})
	}
	return result, nil
}

// BroadcastEventStock publish tồn kho mới nhất lên Redis cho room của event.
// Redis không chạy thì fallback gửi trực tiếp cho local connections.
func BroadcastEventStock(eventId uint) {
	stock, err := FetchEventStock(eventId)
	if err != nil {
		log.Printf("Error loading stock for broadcast: %v", err)
		return
	}

	payload, err := json.Marshal(stock)
	if err != nil {
		log.Printf("Error marshaling stock payload: %v", err)
		return
	}

	client := getRedisClient()
	channel := fmt.Sprintf("event:%d", eventId)
	if err := client.Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Printf("Redis publish failed, broadcasting locally: %v", err)
		deliverToRoom(eventId, payload)
	}
}
