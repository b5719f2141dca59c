package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	UploadComplete NotificationType = "upload_complete"
	UploadError    NotificationType = "upload_error"
	CatalogChanged NotificationType = "catalog_changed"
)

// Notification represents a message pushed to a connected client.
type Notification struct {
	Type    NotificationType       `json:"type"`
	UserID  uint                   `json:"user_id"`
	MediaID string                 `json:"media_id,omitempty"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Client represents a WebSocket client connection.
type Client struct {
	UserID uint
	Conn   *websocket.Conn
}

// Manager tracks connected clients per user and fans notifications out to
// them. One manager is constructed at startup and injected into handlers.
type Manager struct {
	mu      sync.RWMutex
	clients map[uint][]*Client
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{clients: make(map[uint][]*Client)}
}

// RegisterClient registers a new WebSocket client.
func (m *Manager) RegisterClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.UserID] = append(m.clients[client.UserID], client)
}

// UnregisterClient removes a WebSocket client.
func (m *Manager) UnregisterClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clients, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			m.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(m.clients[client.UserID]) == 0 {
		delete(m.clients, client.UserID)
	}
}

// SendNotification sends a notification to every connection of one user.
func (m *Manager) SendNotification(userID uint, notification *Notification) error {
	m.mu.RLock()
	clients, ok := m.clients[userID]
	m.mu.RUnlock()

	if !ok {
		return nil // No clients connected for this user
	}

	data, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	for _, client := range clients {
		if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// Keep sending to the remaining connections.
			continue
		}
	}

	return nil
}

// Broadcast sends a notification to every connected client of every user.
func (m *Manager) Broadcast(notification *Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, clients := range m.clients {
		for _, client := range clients {
			if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				continue
			}
		}
	}
	return nil
}

// SendCatalogChanged tells every connected client that the shared catalog
// changed, so open screens can refresh their listings.
func (m *Manager) SendCatalogChanged(mediaID string, data map[string]interface{}) {
	m.Broadcast(&Notification{
		Type:    CatalogChanged,
		MediaID: mediaID,
		Data:    data,
	})
}

// SendUploadComplete notifies a user that their upload finished.
func (m *Manager) SendUploadComplete(userID uint, mediaID string, data map[string]interface{}) {
	m.SendNotification(userID, &Notification{
		Type:    UploadComplete,
		UserID:  userID,
		MediaID: mediaID,
		Data:    data,
	})
}

// SendUploadError notifies a user that their upload failed.
func (m *Manager) SendUploadError(userID uint, mediaID string, errorMsg string) {
	m.SendNotification(userID, &Notification{
		Type:    UploadError,
		UserID:  userID,
		MediaID: mediaID,
		Message: errorMsg,
	})
}
