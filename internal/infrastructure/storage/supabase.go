// Package storage implementa el object store de evidencias sobre la API REST
// de Supabase Storage. Usa net/http de la librería estándar; no requiere SDK.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/devolution"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/pkg/config"
)

// Verificar en tiempo de compilación que SupabaseStore implementa EvidenceStore.
var _ devolution.EvidenceStore = (*SupabaseStore)(nil)

// SupabaseStore adaptador que sube fotos de evidencia a un bucket de
// Supabase Storage y devuelve la URL pública del objeto.
type SupabaseStore struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

// NewSupabaseStore construye el adaptador.
// Si serviceKey está vacío las subidas devuelven error descriptivo en lugar de panic.
func NewSupabaseStore(cfg config.StorageConfig) *SupabaseStore {
	return &SupabaseStore{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		bucket:     cfg.Bucket,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{
			// Timeout de red de 30 s; la subida ocurre fuera de la transacción.
			Timeout: 30 * time.Second,
		},
	}
}

// Upload sube el contenido al bucket bajo un nombre de objeto único y
// devuelve la URL pública resultante.
func (s *SupabaseStore) Upload(ctx context.Context, data []byte, name string) (string, error) {
	if s.baseURL == "" || s.serviceKey == "" {
		return "", fmt.Errorf("storage: STORAGE_URL o STORAGE_SERVICE_KEY no configurado")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("storage: contenido vacío")
	}

	object := objectName(name)
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, object)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storage: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentTypeFor(name))
	req.Header.Set("x-upsert", "false")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("storage: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("storage: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return "", fmt.Errorf("storage: Supabase HTTP %d: %s", resp.StatusCode, string(body))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, object), nil
}

// objectName antepone un UUID para evitar colisiones entre subidas con el
// mismo nombre de archivo. El resultado va URL-escapado por segmento.
func objectName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "evidencia.jpg"
	}
	return uuid.NewString() + "-" + url.PathEscape(base)
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
