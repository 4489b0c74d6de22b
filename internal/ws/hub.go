package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/sokhnamaimouna97/Paps/models"
)

// Hub maintains the set of connected merchant dashboards and pushes order
// events to them. Events are scoped per merchant: a boutique only ever sees
// its own orders.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Map to quickly find clients by merchant ID
	merchantClients map[string][]*Client

	// Mutex to protect the merchantClients map
	mutex sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Register:        make(chan *Client),
		Unregister:      make(chan *Client),
		clients:         make(map[*Client]bool),
		merchantClients: make(map[string][]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addMerchantClient(client)
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeMerchantClient(client)
			}
		}
	}
}

func (h *Hub) addMerchantClient(client *Client) {
	h.mutex.Lock()
	h.merchantClients[client.MerchantID] = append(h.merchantClients[client.MerchantID], client)
	count := len(h.merchantClients[client.MerchantID])
	h.mutex.Unlock()

	log.Printf("Merchant %s connected. Total connections: %d", client.MerchantID, count)
}

func (h *Hub) removeMerchantClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	conns := h.merchantClients[client.MerchantID]
	for i, conn := range conns {
		if conn == client {
			h.merchantClients[client.MerchantID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.merchantClients[client.MerchantID]) == 0 {
		delete(h.merchantClients, client.MerchantID)
	}
	log.Printf("Merchant %s disconnected", client.MerchantID)
}

// SendToMerchant sends a message to every active connection of one merchant.
func (h *Hub) SendToMerchant(merchantID string, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if clients, ok := h.merchantClients[merchantID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// NotifyOrderCreated pushes an order_created event to the order's boutique.
func (h *Hub) NotifyOrderCreated(commande models.Order) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":     "order_created",
		"commande": commande,
	})
	if err != nil {
		log.Printf("Error marshalling order_created event: %v", err)
		return
	}
	h.SendToMerchant(commande.BoutiqueID, payload)
}

// NotifyOrderStatus pushes an order_status event to the order's boutique.
func (h *Hub) NotifyOrderStatus(commande models.Order) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":     "order_status",
		"order_id": commande.ID,
		"status":   commande.Status,
	})
	if err != nil {
		log.Printf("Error marshalling order_status event: %v", err)
		return
	}
	h.SendToMerchant(commande.BoutiqueID, payload)
}
