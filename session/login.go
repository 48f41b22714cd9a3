package session

import (
	"fmt"
	"unicode/utf8"

	"github.com/voxelbot/headlessclient/protocol"
)

const (
	loginPacketStart        = 0x00
	loginPacketDisconnect   = 0x00
	loginPacketAcknowledged = 0x03
)

// maxUsernameLength is the AssertionViolation boundary for a player name.
const maxUsernameLength = 16

// Login drives the login phase to completion: sends Login Start, then
// reads frames until either a Disconnect or a Login Success arrives. Any
// other packet id is treated as Login Success per spec, since the login
// phase has no other legitimate S->C packets once compression/encryption
// are out of scope. On success, Login Acknowledged is sent and the
// connection is positioned to enter the configuration phase.
func Login(conn *protocol.Conn, name string) error {
	if utf8.RuneCountInString(name) > maxUsernameLength {
		return fmt.Errorf("session: username %q exceeds %d characters", name, maxUsernameLength)
	}

	uuid, err := placeholderLoginUUID()
	if err != nil {
		return err
	}

	start := protocol.NewFrame(loginPacketStart, protocol.String(name), uuid)
	if err := conn.WriteFrame(start); err != nil {
		return err
	}

	f, err := conn.ReadFrame()
	if err != nil {
		return err
	}

	if f.ID == loginPacketDisconnect {
		var reason protocol.String
		if _, err := reason.ReadFrom(f); err != nil {
			return err
		}
		return &Disconnected{Phase: "login", Reason: string(reason)}
	}

	ack := protocol.NewFrame(loginPacketAcknowledged)
	return conn.WriteFrame(ack)
}
