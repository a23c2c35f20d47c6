package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESAPI is the part of the sesv2 client SESSender needs.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESSender delivers plain-text mail through AWS SES v2.
type SESSender struct {
	client SESAPI
	sender string
}

func NewSESSender(cfg aws.Config, sender string) *SESSender {
	return &SESSender{client: sesv2.NewFromConfig(cfg), sender: sender}
}

func newSESSenderWithClient(client SESAPI, sender string) *SESSender {
	return &SESSender{client: client, sender: sender}
}

func (s *SESSender) Send(ctx context.Context, to string, subject string, body string) error {
	if s.client == nil || s.sender == "" {
		return fmt.Errorf("ses sender not configured")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
