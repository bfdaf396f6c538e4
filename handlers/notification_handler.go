package handlers

import (
	"log"
	"net/http"

	"e-guarding-cctv/console/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	EnableCompression: true,
}

type NotificationHandler struct {
	notifier *services.NotifierService
}

func NewNotificationHandler(notifier *services.NotifierService) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// GetCurrent returns the alert on screen, if any.
func (h *NotificationHandler) GetCurrent(c *gin.Context) {
	if notif := h.notifier.Current(); notif != nil {
		c.JSON(http.StatusOK, gin.H{"notification": notif})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": nil})
}

// Dismiss clears the alert on user request.
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	h.notifier.Dismiss()
	c.JSON(http.StatusOK, gin.H{"message": "Dismissed"})
}

// Stream pushes overlay updates over a WebSocket. A client connecting while
// an alert is on screen receives it immediately.
func (h *NotificationHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[Notifications] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	if notif := h.notifier.Current(); notif != nil {
		if err := conn.WriteJSON(services.NotifierUpdate{Type: "event", Notification: notif}); err != nil {
			return
		}
	}

	// Reader goroutine: drains client frames and signals disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(update); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
