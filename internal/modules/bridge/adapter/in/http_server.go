package in

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"formnav/internal/modules/bridge/dto"
	bridgein "formnav/internal/modules/bridge/port/in"
	"formnav/internal/platform/metrics"
)

// SessionHeader lets an extension keep one session across requests.
const SessionHeader = "X-Formnav-Session"

var extensionSchemes = []string{"chrome-extension://", "moz-extension://"}

type HTTPServer struct {
	usecase bridgein.Usecase
	metrics *metrics.Metrics
	logger  *zap.Logger
	engine  *gin.Engine
}

// NewHTTPServer accepts nil metrics and logger.
func NewHTTPServer(usecase bridgein.Usecase, m *metrics.Metrics, logger *zap.Logger) *HTTPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &HTTPServer{usecase: usecase, metrics: m, logger: logger}
	s.engine = s.routes()
	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Serve listens on addr until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *HTTPServer) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("http bridge listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.observe(), cors.New(cors.Config{
		AllowOriginFunc: isExtensionOrigin,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type", SessionHeader},
		ExposeHeaders:   []string{SessionHeader},
		MaxAge:          12 * time.Hour,
	}))
	engine.GET("/healthz", s.healthz)
	engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	engine.POST("/v1/messages", s.message)
	return engine
}

func (s *HTTPServer) healthz(c *gin.Context) {
	resp := s.usecase.Handle(c.Request.Context(), "healthz", dto.Request{Action: "ping"})
	c.JSON(StatusCode(resp), resp)
}

func (s *HTTPServer) message(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID = s.usecase.OpenSession("http")
	}
	c.Header(SessionHeader, sessionID)

	var req dto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Status: dto.StatusError,
			Code:   dto.CodeValidation,
			Error:  fmt.Sprintf("decode request: %v", err),
		})
		return
	}
	resp := s.usecase.Handle(c.Request.Context(), sessionID, req)
	c.JSON(StatusCode(resp), resp)
}

func (s *HTTPServer) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()
		s.metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status), elapsed)
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		)
	}
}

// StatusCode maps a bridge response onto an HTTP status.
func StatusCode(resp dto.Response) int {
	if resp.OK() {
		return http.StatusOK
	}
	switch resp.Code {
	case dto.CodeValidation, dto.CodeUnknownAction:
		return http.StatusBadRequest
	case dto.CodeIndexOutOfRange:
		return http.StatusNotFound
	case dto.CodeDomainNotAllowed:
		return http.StatusForbidden
	case dto.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isExtensionOrigin(origin string) bool {
	for _, scheme := range extensionSchemes {
		if strings.HasPrefix(origin, scheme) && len(origin) > len(scheme) {
			return true
		}
	}
	return false
}
