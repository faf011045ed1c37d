package api

import (
	"log/slog"

	"github.com/segmentio/ksuid"
	"github.com/ssargent/flashkit/pkg/inspect"
	"github.com/ssargent/flashkit/pkg/storage"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PutAssetResponse is returned after an asset is stored
type PutAssetResponse struct {
	ID     string          `json:"id"`
	Report *inspect.Report `json:"report"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind          string
	Port          int
	APIKey        string
	MaxUploadSize int64
	// MaxDecodedSize bounds the uncompressed size of inspected movies.
	MaxDecodedSize int
	Logger         *slog.Logger
}

// AssetStore defines the asset operations the API needs
type AssetStore interface {
	Put(kind inspect.Kind, data []byte) (ksuid.KSUID, *inspect.Report, error)
	Get(id ksuid.KSUID) (*storage.Asset, error)
	Delete(id ksuid.KSUID) error
	List() ([]storage.AssetInfo, error)
}
