package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"whisper-service/internal/session"
	"whisper-service/internal/telemetry"
)

// Handler upgrades HTTP requests to websocket connections on the relay.
type Handler struct {
	relay   *Relay
	store   *session.Store
	emitter *telemetry.AuditEmitter
}

// NewHandler constructs a Handler.
func NewHandler(relay *Relay, store *session.Store, emitter *telemetry.AuditEmitter) *Handler {
	return &Handler{relay: relay, store: store, emitter: emitter}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and hands it to the relay. Anonymous
// visitors may connect; they receive broadcasts but cannot join or submit.
func (h *Handler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("whisper-service/ws").Start(c.Request.Context(), "ws.handshake",
		trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	identity := h.store.Current(c.Request)
	span.SetAttributes(attribute.Bool("ws.authenticated", identity.Authenticated()))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.relay.Serve(conn, identity)

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	var userID *string
	if identity.Authenticated() {
		username := identity.Username
		userID = &username
	}
	h.emitter.Emit(ctx, "INFO", "websocket connected", requestID, userID)
}
