package out

import (
	"context"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"formnav/internal/modules/bridge/dto"
	bridgeout "formnav/internal/modules/bridge/port/out"
)

const callTimeout = 10 * time.Second

// JSONRPCClient dials the socket once per call.
type JSONRPCClient struct {
	socketPath string
}

func NewJSONRPCClient(socketPath string) bridgeout.Client {
	return &JSONRPCClient{socketPath: socketPath}
}

type empty struct{}

func (c *JSONRPCClient) Ping(ctx context.Context) (dto.Response, error) {
	client, err := dialClient(ctx, c.socketPath)
	if err != nil {
		return dto.Response{}, err
	}
	defer client.Close()
	resp := dto.Response{}
	if err := client.Call("Bridge.Ping", empty{}, &resp); err != nil {
		return dto.Response{}, err
	}
	return resp, nil
}

func (c *JSONRPCClient) Handle(ctx context.Context, req dto.Request) (dto.Response, error) {
	client, err := dialClient(ctx, c.socketPath)
	if err != nil {
		return dto.Response{}, err
	}
	defer client.Close()
	resp := dto.Response{}
	if err := client.Call("Bridge.Handle", req, &resp); err != nil {
		return dto.Response{}, err
	}
	return resp, nil
}

func dialClient(ctx context.Context, socketPath string) (*rpc.Client, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(callTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)
	return rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn)), nil
}
