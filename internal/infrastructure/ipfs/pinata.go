// Package ipfs implementa el puerto Uploader contra la API de Pinata
// (pinFileToIPFS). El contenido queda direccionado por su CID y accesible
// vía el gateway configurado.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/pkg/config"
)

const pinFileURL = "https://api.pinata.cloud/pinning/pinFileToIPFS"

var _ ports.Uploader = (*PinataUploader)(nil)

// PinataUploader sube ficheros a Pinata mediante multipart/form-data.
type PinataUploader struct {
	client  *http.Client
	jwt     string
	gateway string
}

// NewPinataUploader construye el uploader con la configuración de Pinata.
func NewPinataUploader(cfg config.PinataConfig) *PinataUploader {
	return &PinataUploader{
		client:  &http.Client{Timeout: 30 * time.Second},
		jwt:     cfg.JWT,
		gateway: cfg.GatewayURL,
	}
}

// pinataResponse respuesta de pinFileToIPFS.
type pinataResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// Upload sube los bytes como un fichero y devuelve el CID y la URL pública
// del gateway. Un fallo aquí aborta la operación llamante sin estado parcial.
func (u *PinataUploader) Upload(ctx context.Context, data []byte, filename string) (*ports.UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("pinata: crear form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("pinata: escribir fichero: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("pinata: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pinFileURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("pinata: crear request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+u.jwt)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinata: enviar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pinata: status %d: %s", resp.StatusCode, string(body))
	}

	var out pinataResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("pinata: decodificar respuesta: %w", err)
	}
	if out.IpfsHash == "" {
		return nil, fmt.Errorf("pinata: respuesta sin IpfsHash")
	}
	return &ports.UploadResult{
		CID: out.IpfsHash,
		URL: fmt.Sprintf("https://%s/ipfs/%s", u.gateway, out.IpfsHash),
	}, nil
}
