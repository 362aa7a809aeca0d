package in

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"formnav/internal/modules/bridge/dto"
	bridgein "formnav/internal/modules/bridge/port/in"
)

// Frame limits of the browser native messaging protocol.
const (
	MaxResponseSize = 1 << 20
	MaxRequestSize  = 64 << 20
)

var ErrFrameTooLarge = errors.New("native message frame too large")

// NativeHost speaks the browser native messaging protocol: each message is a
// uint32 length in native byte order followed by that many bytes of JSON.
type NativeHost struct {
	usecase bridgein.Usecase
	in      *bufio.Reader
	out     io.Writer
}

func NewNativeHost(usecase bridgein.Usecase, in io.Reader, out io.Writer) *NativeHost {
	return &NativeHost{usecase: usecase, in: bufio.NewReader(in), out: out}
}

// Run answers one response per request until the browser closes stdin or ctx
// is cancelled. A clean EOF returns nil.
func (h *NativeHost) Run(ctx context.Context) error {
	sessionID := h.usecase.OpenSession("native")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		payload, err := ReadFrame(h.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		resp := h.handle(ctx, sessionID, payload)
		if err := WriteFrame(h.out, resp); err != nil {
			return err
		}
	}
}

func (h *NativeHost) handle(ctx context.Context, sessionID string, payload []byte) dto.Response {
	var req dto.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return dto.Response{Status: dto.StatusError, Code: dto.CodeValidation, Error: fmt.Sprintf("decode request: %v", err)}
	}
	return h.usecase.Handle(ctx, sessionID, req)
}

// ReadFrame returns io.EOF only when the stream ends between frames.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("read frame header: %w", err)
		}
		return nil, err
	}
	size := binary.NativeEndian.Uint32(header[:])
	if size > MaxRequestSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read frame body: %w", err)
	}
	return payload, nil
}

// WriteFrame encodes resp, replacing it with an internal error when it would
// exceed MaxResponseSize.
func WriteFrame(w io.Writer, resp dto.Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if len(payload) > MaxResponseSize {
		payload, err = json.Marshal(dto.Response{
			Status: dto.StatusError,
			Code:   dto.CodeInternal,
			Error:  fmt.Sprintf("%v: response of %d bytes", ErrFrameTooLarge, len(payload)),
		})
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}
	frame := make([]byte, 4+len(payload))
	binary.NativeEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
