package service

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMService delivers review-outcome pushes through Firebase Cloud Messaging.
// A nil receiver (Firebase not configured) drops every push silently so the
// rest of the notification pipeline keeps working without it.
type FCMService struct {
	client *messaging.Client
}

func NewFCMService(serviceAccountPath string) *FCMService {
	if serviceAccountPath == "" {
		return nil
	}
	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		log.Printf("fcm: firebase init failed: %v", err)
		return nil
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("fcm: messaging client init failed: %v", err)
		return nil
	}
	return &FCMService{client: client}
}

// Push sends one notification to a device token. The notification type rides
// in the data payload so the app can route the tap to the right screen.
func (s *FCMService) Push(ctx context.Context, token, notifType, title, body string, data map[string]string) error {
	if s == nil || token == "" {
		return nil
	}
	payload := map[string]string{"type": notifType}
	for k, v := range data {
		payload[k] = v
	}
	msg := &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         payload,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{Sound: "default"},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
		},
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		log.Printf("fcm: send failed: %v", err)
		return err
	}
	return nil
}
