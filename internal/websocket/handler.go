package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeGraphFeed streams graph change events to the peer until it disconnects.
func ServeGraphFeed(hub *Hub, c *websocket.Conn) {
	client := newClient(c, nil)
	if !hub.join(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
	hub.leave(client)
}
