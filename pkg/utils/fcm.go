package utils

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// FCMClient pengirim push notification ke aplikasi petugas
type FCMClient struct {
	client *messaging.Client
}

// NewFCMClient menginisialisasi koneksi ke Firebase dari file service account
func NewFCMClient(ctx context.Context, credentialsPath string) (*FCMClient, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}
	return &FCMClient{client: client}, nil
}

// SendNotification mengirim pesan ke satu device (FCM Token)
func (f *FCMClient) SendNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	_, err := f.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data, // Data tambahan (misal: patient_id: "123")
	})
	return err
}
