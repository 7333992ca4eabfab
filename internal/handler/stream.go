package handler

import (
	"encoding/json"
	"io"

	"isletmeapp/internal/event"

	"github.com/gin-gonic/gin"
)

// Stream pushes committed change events to the client as Server-Sent Events.
// The UI refreshes its read models (pools, debts, recent feeds) on receipt
// instead of polling. Slow clients miss events rather than stall the ledger;
// a missed event only delays a refresh.
func Stream(bus *event.Bus) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, cancel := bus.SubscribeChan()
		defer cancel()

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case e, ok := <-ch:
				if !ok {
					return false
				}
				data, err := json.Marshal(e)
				if err != nil {
					return true
				}
				c.SSEvent("change", string(data))
				return true
			}
		})
	}
}
