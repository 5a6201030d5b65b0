// Package notify implements the notification dispatch contract: structured
// notification objects emitted by the domain services, fanned out to push
// and email channels. Delivery is best-effort and never part of the
// surrounding transaction.
package notify

import (
	"context"
	"fmt"
	"strconv"
)

// Category identifies the kind of notification.
type Category string

const (
	// CategoryRabbitAssigned fires when a rabbit is assigned to a group
	// belonging to an active team.
	CategoryRabbitAssigned Category = "rabbit_assigned"
	// CategoryRabbitMoved fires when a rabbit moves to a different group
	// within the same team.
	CategoryRabbitMoved Category = "rabbit_moved"
	// CategoryAdmissionToConfirm fires for rabbits stuck in Incoming past
	// their expected admission date.
	CategoryAdmissionToConfirm Category = "admission_to_confirm"
)

// Channel is a delivery channel.
type Channel string

const (
	// ChannelPush delivers via device push.
	ChannelPush Channel = "push"
	// ChannelEmail delivers via email.
	ChannelEmail Channel = "email"
)

// PushMessage is the user-visible push payload.
type PushMessage struct {
	Title string
	Body  string
}

// EmailData is the email payload.
type EmailData struct {
	Subject string
	Body    string
}

// Notification is the structured notification object handed to the sender.
// Exactly one of TargetUserID and TargetTeamID is set.
type Notification struct {
	Category Category
	Channels []Channel
	Data     map[string]string
	Push     *PushMessage
	Email    *EmailData

	TargetUserID *uint64
	TargetTeamID *uint
}

// HasChannel reports whether the notification requests the given channel.
func (n *Notification) HasChannel(ch Channel) bool {
	for _, c := range n.Channels {
		if c == ch {
			return true
		}
	}

	return false
}

// ForTeam targets the notification at a team, clearing any user target.
func (n *Notification) ForTeam(teamID uint) *Notification {
	n.TargetTeamID = &teamID
	n.TargetUserID = nil

	return n
}

// ForUser targets the notification at a single user, clearing any team target.
func (n *Notification) ForUser(userID uint64) *Notification {
	n.TargetUserID = &userID
	n.TargetTeamID = nil

	return n
}

// Sender delivers notifications. Implementations must be safe for
// fire-and-forget use.
type Sender interface {
	Send(ctx context.Context, n *Notification) error
}

// RabbitAssigned builds the notification for a rabbit assigned to a team.
func RabbitAssigned(teamID, rabbitID uint) *Notification {
	return &Notification{
		Category: CategoryRabbitAssigned,
		Channels: []Channel{ChannelPush},
		Data: map[string]string{
			"teamId":   strconv.FormatUint(uint64(teamID), 10),
			"rabbitId": strconv.FormatUint(uint64(rabbitID), 10),
		},
		Push: &PushMessage{
			Title: "New rabbit",
			Body:  "A rabbit has been assigned to your team.",
		},
		TargetTeamID: &teamID,
	}
}

// AdmissionToConfirm builds the reminder for a rabbit still marked incoming
// past its expected admission date. The caller picks the target with ForTeam
// or ForUser before dispatch.
func AdmissionToConfirm(rabbitID uint, rabbitName string, channels []Channel) *Notification {
	body := fmt.Sprintf("Rabbit %s is past its expected admission date and still marked as incoming. Please confirm or correct the admission.", rabbitName)

	n := &Notification{
		Category: CategoryAdmissionToConfirm,
		Channels: channels,
		Data: map[string]string{
			"rabbitId": strconv.FormatUint(uint64(rabbitID), 10),
		},
		Push: &PushMessage{
			Title: "Admission to confirm",
			Body:  body,
		},
	}

	if n.HasChannel(ChannelEmail) {
		n.Email = &EmailData{
			Subject: "Admission to confirm: " + rabbitName,
			Body:    body,
		}
	}

	return n
}

// RabbitMoved builds the notification for a rabbit moved within a team.
func RabbitMoved(teamID, rabbitID uint) *Notification {
	return &Notification{
		Category: CategoryRabbitMoved,
		Channels: []Channel{ChannelPush},
		Data: map[string]string{
			"teamId":   strconv.FormatUint(uint64(teamID), 10),
			"rabbitId": strconv.FormatUint(uint64(rabbitID), 10),
		},
		Push: &PushMessage{
			Title: "Rabbit moved",
			Body:  "A rabbit has moved to a different group in your team.",
		},
		TargetTeamID: &teamID,
	}
}
