package session

import (
	"encoding/hex"

	"github.com/voxelbot/headlessclient/protocol"
)

// ProtocolVersion is the protocol revision this client speaks: 769,
// game version 1.21.4.
const ProtocolVersion = 769

// NextStateLogin is the handshake's next_state value that requests the
// login phase rather than a server-list-ping status response.
const NextStateLogin = 2

// placeholderUUID is the fixed login UUID sent verbatim to offline-mode
// servers, which accept it without authenticating it against any session
// service.
const placeholderUUID = "de6078a856ec4cf9b8832a46025ae261"

// Handshake sends the single C->S handshake frame that begins every
// connection, moving the server's view of the connection from its
// implicit initial state into the login phase.
func Handshake(conn *protocol.Conn, serverAddress string, port uint16) error {
	f := protocol.NewFrame(0x00,
		protocol.VarInt(ProtocolVersion),
		protocol.String(serverAddress),
		protocol.UnsignedShort(port),
		protocol.VarInt(NextStateLogin),
	)
	return conn.WriteFrame(f)
}

// placeholderLoginUUID decodes the fixed hex placeholder into a
// protocol.UUID, matching the 16 raw bytes the login start packet expects.
func placeholderLoginUUID() (protocol.UUID, error) {
	var u protocol.UUID
	if _, err := hex.Decode(u[:], []byte(placeholderUUID)); err != nil {
		return u, err
	}
	return u, nil
}
