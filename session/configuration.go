package session

import (
	"log"

	"github.com/voxelbot/headlessclient/protocol"
)

const (
	configPacketPluginMessage = 0x01
	configPacketDisconnect    = 0x02
	configPacketFinish        = 0x03
	configPacketKnownPacks    = 0x0e
	configPacketIdentifier    = 0x07
	configPacketUpdateTags    = 0x0d

	configReplyKnownPacks = 0x07
	configReplyFinish     = 0x03
)

// Configuration drives the configuration phase to completion: loops reading
// frames, replying to Known Packs and acknowledging Finish, until Finish is
// received or the server disconnects.
func Configuration(conn *protocol.Conn, logger *log.Logger) error {
	for {
		f, err := conn.ReadFrame()
		if err != nil {
			return err
		}

		switch f.ID {
		case configPacketDisconnect:
			var reason protocol.String
			if _, err := reason.ReadFrom(f); err != nil {
				return err
			}
			return &Disconnected{Phase: "configuration", Reason: string(reason)}

		case configPacketPluginMessage, configPacketUpdateTags:
			// Body intentionally discarded; f.Data still holds it, which is
			// fine since f is dropped after this iteration.

		case configPacketIdentifier:
			var channel, data protocol.String
			if _, err := channel.ReadFrom(f); err != nil {
				return err
			}
			if _, err := data.ReadFrom(f); err != nil {
				return err
			}

		case configPacketKnownPacks:
			reply := protocol.NewFrame(configReplyKnownPacks, protocol.VarInt(0))
			if err := conn.WriteFrame(reply); err != nil {
				return err
			}

		case configPacketFinish:
			reply := protocol.NewFrame(configReplyFinish)
			return conn.WriteFrame(reply)

		default:
			if logger != nil {
				logger.Printf("configuration: %v", &UnexpectedPacketInPhase{Phase: "configuration", ID: f.ID})
			}
		}
	}
}
