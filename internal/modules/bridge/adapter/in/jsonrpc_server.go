package in

import (
	"context"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"

	"formnav/internal/modules/bridge/dto"
	bridgein "formnav/internal/modules/bridge/port/in"
)

// ServiceName is the net/rpc service the socket exposes.
const ServiceName = "Bridge"

type JSONRPCServer struct {
	usecase bridgein.Usecase
}

func NewJSONRPCServer(usecase bridgein.Usecase) *JSONRPCServer {
	return &JSONRPCServer{usecase: usecase}
}

// Empty is the argument of Bridge.Ping.
type Empty struct{}

type rpcHandler struct {
	usecase   bridgein.Usecase
	sessionID string
}

func (h *rpcHandler) Handle(req dto.Request, resp *dto.Response) error {
	*resp = h.usecase.Handle(context.Background(), h.sessionID, req)
	return nil
}

func (h *rpcHandler) Ping(_ Empty, resp *dto.Response) error {
	*resp = h.usecase.Handle(context.Background(), h.sessionID, dto.Request{Action: "ping"})
	return nil
}

// Serve listens on socketPath until ctx is cancelled. Each connection is a
// bridge session.
func (s *JSONRPCServer) Serve(ctx context.Context, socketPath string) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o755); err != nil {
		return fmt.Errorf("create ipc dir: %w", err)
	}
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale ipc socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen ipc socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0o600); err != nil {
		_ = ln.Close()
		return fmt.Errorf("chmod ipc socket: %w", err)
	}
	defer ln.Close()

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return err
		}
		go s.serveConn(conn)
	}
}

func (s *JSONRPCServer) serveConn(conn net.Conn) {
	rpcSrv := rpc.NewServer()
	handler := &rpcHandler{usecase: s.usecase, sessionID: s.usecase.OpenSession("jsonrpc")}
	if err := rpcSrv.RegisterName(ServiceName, handler); err != nil {
		_ = conn.Close()
		return
	}
	rpcSrv.ServeCodec(jsonrpc.NewServerCodec(conn))
}
