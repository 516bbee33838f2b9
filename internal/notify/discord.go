package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Phazzie/tabbymctabface/internal/logging"
)

// DiscordSink delivers quips to a Discord channel. Useful when the engine
// runs headless and the popup layer is not around to render anything.
type DiscordSink struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordSink creates a sink for the given bot token and channel.
// Sends go over the REST API, so the gateway connection is never opened.
func NewDiscordSink(token, channelID string) (*DiscordSink, error) {
	if token == "" || channelID == "" {
		return nil, fmt.Errorf("discord sink requires token and channel id")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	logging.Info("notify", "discord sink ready (channel %s)", channelID)
	return &DiscordSink{session: session, channelID: channelID}, nil
}

func (s *DiscordSink) Send(_ context.Context, req Request) error {
	body := req.Body
	if req.Priority == PriorityHigh {
		body = "**" + req.Title + "** " + body
	}
	if _, err := s.session.ChannelMessageSend(s.channelID, body); err != nil {
		return fmt.Errorf("discord send failed: %w", err)
	}
	return nil
}

// Close releases the session.
func (s *DiscordSink) Close() error {
	return s.session.Close()
}
