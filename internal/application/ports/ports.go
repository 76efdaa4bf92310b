// Package ports define los puertos de colaboradores externos (email, IPFS,
// monitorización) que la capa de aplicación consume sin conocer su
// implementación.
package ports

import "context"

// EmailSender envía correos transaccionales (verificación, recuperación,
// invitaciones). En entorno de test se cablea una implementación no-op.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// UploadResult resultado de subir un fichero al servicio de pinning.
type UploadResult struct {
	CID string // content identifier devuelto por el servicio
	URL string // URL pública vía gateway (https://<gateway>/ipfs/<cid>)
}

// Uploader sube bytes a un servicio de pinning direccionado por contenido
// (logos de usuario, imágenes de firma de albarán).
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (*UploadResult, error)
}

// Notifier reporta errores 5xx a un canal operacional. Es un efecto
// secundario: un fallo al notificar nunca afecta a la respuesta HTTP.
type Notifier interface {
	Notify(ctx context.Context, event NotifyEvent)
}

// NotifyEvent datos del error reportado al canal de monitorización.
type NotifyEvent struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}
