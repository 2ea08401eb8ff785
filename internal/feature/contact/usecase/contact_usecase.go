// Package usecase relays portfolio contact messages to the portfolio owner.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	profileentity "devport_backend/internal/feature/profile/domain/entity"
	profileusecase "devport_backend/internal/feature/profile/usecase"
)

const contactSubject = "New contact from your portfolio"

var (
	// ErrOwnerNotFound is returned when the addressed portfolio owner does not exist.
	ErrOwnerNotFound = errors.New("user not found")

	// ErrInvalidMessage is returned for an empty sender or message.
	ErrInvalidMessage = errors.New("invalid contact message")

	// ErrDeliveryFailed is returned when the mail server rejects the message.
	ErrDeliveryFailed = errors.New("failed to send email")
)

// OwnerFinder looks up the portfolio owner's profile.
type OwnerFinder interface {
	FindByID(ctx context.Context, id uint) (*profileentity.Profile, error)
}

// TextSender delivers a plain-text message synchronously.
type TextSender interface {
	SendText(ctx context.Context, to, replyTo, subject, body string) error
}

// ContactUsecase sends visitor messages to portfolio owners.
type ContactUsecase struct {
	owners OwnerFinder
	sender TextSender
}

// NewContactUsecase creates a new ContactUsecase.
func NewContactUsecase(owners OwnerFinder, sender TextSender) *ContactUsecase {
	return &ContactUsecase{owners: owners, sender: sender}
}

// Send delivers message from visitorEmail to the owner of ownerID's portfolio.
func (u *ContactUsecase) Send(ctx context.Context, visitorEmail, message string, ownerID uint) error {
	visitorEmail = strings.TrimSpace(visitorEmail)
	message = strings.TrimSpace(message)
	if visitorEmail == "" || message == "" {
		return ErrInvalidMessage
	}

	owner, err := u.owners.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profileusecase.ErrProfileNotFound) {
			return ErrOwnerNotFound
		}
		return fmt.Errorf("failed to look up owner: %w", err)
	}

	body := fmt.Sprintf("You have a new message from %s:\n\n%s", visitorEmail, message)
	if err := u.sender.SendText(ctx, owner.Email, visitorEmail, contactSubject, body); err != nil {
		slog.Error("contact email delivery failed", "error", err, "owner_id", ownerID)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	slog.Info("contact email sent", "owner_id", ownerID)
	return nil
}
