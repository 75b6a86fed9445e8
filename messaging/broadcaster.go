package messaging

import (
	"sync"
)

// Change events broadcast to connected clients
const (
	EventRecordsUpdated  = "health_records_updated"
	EventSettingsUpdated = "settings_updated"
)

var sseClients = make(map[chan string]bool)
var sseClientsMutex sync.Mutex

// AddSSEClient registers a client channel for change notifications
func AddSSEClient(client chan string) {
	sseClientsMutex.Lock()
	sseClients[client] = true
	sseClientsMutex.Unlock()
}

// RemoveSSEClient unregisters and closes a client channel
func RemoveSSEClient(client chan string) {
	sseClientsMutex.Lock()
	if _, ok := sseClients[client]; ok {
		delete(sseClients, client)
		close(client)
	}
	sseClientsMutex.Unlock()
}

// BroadcastMessage sends a message to all connected clients. Clients
// with a full buffer are skipped rather than blocking the writer.
func BroadcastMessage(message string) {
	sseClientsMutex.Lock()
	defer sseClientsMutex.Unlock()

	for client := range sseClients {
		select {
		case client <- message:
		default:
		}
	}
}

// ClientCount returns the number of connected clients
func ClientCount() int {
	sseClientsMutex.Lock()
	defer sseClientsMutex.Unlock()
	return len(sseClients)
}
