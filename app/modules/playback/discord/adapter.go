// Package discordvoice adapts the playback voice-capability port onto the
// Discord gateway. Clips are submitted as stored; transcoding is out of scope,
// so payloads are expected to be pre-framed for the voice socket.
package discordvoice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/soundcord/soundcord-bot/app/modules/playback"
)

// frameSize is the byte length of one chunk submitted to the voice socket.
const frameSize = 4096

// Connector joins guild voice channels over one shared gateway session.
type Connector struct {
	session *discordgo.Session
	guildID string
	logger  *slog.Logger
}

// NewConnector opens the Discord gateway connection for the configured guild.
func NewConnector(token, guildID string, logger *slog.Logger) (*Connector, error) {
	if logger == nil {
		logger = slog.Default()
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to connect to discord gateway: %w", err)
	}

	logger.Info("Discord gateway connected", slog.String("guild_id", guildID))

	return &Connector{
		session: session,
		guildID: guildID,
		logger:  logger,
	}, nil
}

// Close disconnects the gateway session.
func (c *Connector) Close() error {
	return c.session.Close()
}

// Join connects to a voice channel and returns the live session.
func (c *Connector) Join(ctx context.Context, channelID string) (playback.Session, error) {
	vc, err := c.session.ChannelVoiceJoin(c.guildID, channelID, false, true)
	if err != nil {
		return nil, fmt.Errorf("failed to join voice channel %s: %w", channelID, err)
	}

	return &voiceSession{
		vc:     vc,
		logger: c.logger,
		idle:   make(chan struct{}),
		errs:   make(chan error, 1),
		stop:   make(chan struct{}),
	}, nil
}

// voiceSession streams one clip over an established voice connection.
type voiceSession struct {
	vc     *discordgo.VoiceConnection
	logger *slog.Logger

	idle chan struct{}
	errs chan error
	stop chan struct{}

	destroyOnce sync.Once
}

// Stream starts submitting the clip in a background goroutine. Volume is
// carried for the event contract but not applied at the wire: the voice
// socket takes pre-encoded frames.
func (s *voiceSession) Stream(data []byte, volume int) error {
	if err := s.vc.Speaking(true); err != nil {
		return fmt.Errorf("failed to set speaking state: %w", err)
	}

	go s.submit(data)
	return nil
}

func (s *voiceSession) submit(data []byte) {
	defer func() {
		if err := s.vc.Speaking(false); err != nil {
			s.logger.Debug("Failed to clear speaking state", slog.Any("error", err))
		}
	}()

	for offset := 0; offset < len(data); offset += frameSize {
		end := offset + frameSize
		if end > len(data) {
			end = len(data)
		}
		select {
		case <-s.stop:
			return
		case s.vc.OpusSend <- data[offset:end]:
		}
	}

	close(s.idle)
}

func (s *voiceSession) Idle() <-chan struct{} { return s.idle }

func (s *voiceSession) Err() <-chan error { return s.errs }

// Destroy stops the frame loop and leaves the voice channel. Idempotent.
func (s *voiceSession) Destroy() error {
	var err error
	s.destroyOnce.Do(func() {
		close(s.stop)
		err = s.vc.Disconnect()
	})
	return err
}
