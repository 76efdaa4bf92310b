// Package webhook implementa el puerto Notifier: reporta errores 5xx a un
// endpoint operacional vía POST JSON. Es fire-and-forget: la respuesta HTTP
// al cliente ya se envió y un fallo aquí solo se registra.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/pkg/logger"
)

var _ ports.Notifier = (*HTTPNotifier)(nil)

// HTTPNotifier envía eventos de error al webhook de monitorización.
type HTTPNotifier struct {
	client *http.Client
	url    string
	log    *logger.Logger
}

// NewHTTPNotifier construye el notifier. Con url vacía no notifica nada.
func NewHTTPNotifier(url string, log *logger.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
		log:    log,
	}
}

// Notify envía el evento. Nunca devuelve error: notificar es un efecto
// secundario que no debe afectar a la petición ya respondida.
func (n *HTTPNotifier) Notify(ctx context.Context, event ports.NotifyEvent) {
	if n.url == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Warn().Err(err).Str("webhook", n.url).Msg("no se pudo notificar el error")
		return
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.log.Warn().Int("status", resp.StatusCode).Str("webhook", n.url).Msg("el webhook de monitorización respondió con error")
	}
}
