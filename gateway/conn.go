package gateway

import (
	socketio "github.com/zishang520/socket.io/v2/socket"
)

// socketConn adapts a socket.io socket to the contract.Conn the realtime
// core addresses. The verified identity is resolved once at handshake
// time and never changes for the life of the connection.
type socketConn struct {
	socket *socketio.Socket
	userID string
}

func newSocketConn(socket *socketio.Socket, userID string) *socketConn {
	return &socketConn{socket: socket, userID: userID}
}

func (c *socketConn) ID() string {
	return string(c.socket.Id())
}

func (c *socketConn) UserID() string {
	return c.userID
}

func (c *socketConn) Emit(event string, payload any) error {
	return c.socket.Emit(event, payload)
}
