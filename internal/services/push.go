package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// PushPayload is the title/body pair shown on a device, plus optional
// key/value data for the client app.
type PushPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushSender broadcasts a payload to every registered device, best-effort.
type PushSender interface {
	Send(payload PushPayload)
}

// PushService delivers payloads over Firebase Cloud Messaging to an
// in-memory registry of device tokens. The registry is intentionally not
// persisted; subscriptions are lost on restart and devices re-register.
type PushService struct {
	client *messaging.Client

	mu     sync.RWMutex
	tokens map[string]string // subscription id -> FCM token
}

// NewPushService initializes Firebase from FIREBASE_SERVICE_ACCOUNT_PATH.
// When the variable is unset the service still works as a registry but
// Send becomes a no-op, so local setups run without Firebase credentials.
func NewPushService(ctx context.Context) (*PushService, error) {
	s := &PushService{tokens: make(map[string]string)}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Println("Warning: FIREBASE_SERVICE_ACCOUNT_PATH not set. Push notifications will be disabled.")
		return s, nil
	}

	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %v", err)
	}

	s.client = client
	log.Println("Firebase Cloud Messaging initialized successfully")
	return s, nil
}

// Subscribe registers a device token and returns the subscription id the
// client can later use to unsubscribe.
func (s *PushService) Subscribe(token string) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.tokens[id] = token
	s.mu.Unlock()
	log.Printf("Registered push subscription %s", id)
	return id
}

// Unsubscribe removes a subscription, reporting whether it existed.
func (s *PushService) Unsubscribe(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[id]
	delete(s.tokens, id)
	return ok
}

// SubscriptionCount returns the number of registered devices.
func (s *PushService) SubscriptionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// Send fans the payload out to every subscription. Each delivery failure
// is logged and does not block the remaining tokens.
func (s *PushService) Send(payload PushPayload) {
	if s.client == nil {
		log.Println("Warning: Firebase not initialized. Skipping notification.")
		return
	}

	s.mu.RLock()
	tokens := make([]string, 0, len(s.tokens))
	for _, token := range s.tokens {
		tokens = append(tokens, token)
	}
	s.mu.RUnlock()

	ctx := context.Background()
	for _, token := range tokens {
		message := &messaging.Message{
			Notification: &messaging.Notification{
				Title: payload.Title,
				Body:  payload.Body,
			},
			Data:  payload.Data,
			Token: token,
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound:     "default",
					ChannelID: "transfersol_default",
				},
			},
			APNS: &messaging.APNSConfig{
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Sound: "default",
					},
				},
			},
		}

		if _, err := s.client.Send(ctx, message); err != nil {
			log.Printf("Failed to send push to token %s: %v", token, err)
			continue
		}
	}
}
