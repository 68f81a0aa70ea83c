package api

import (
	"github.com/auren/gff/pkg/gff"
	"github.com/auren/gff/pkg/storage"
)

// APIResponse is the envelope every JSON endpoint responds with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PutResult reports the revision created by a write.
type PutResult struct {
	Name     string `json:"name"`
	Revision string `json:"revision"`
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Port    int
	Bind    string
	APIKey  string
	DataDir string
}

// ResourceStore is the storage surface the server depends on.
type ResourceStore interface {
	Put(name string, g *gff.GFF) (string, error)
	PutRaw(name string, data []byte) (string, error)
	Get(name string) (*gff.GFF, error)
	GetRaw(name string) ([]byte, error)
	Delete(name string) error
	List(prefix string) ([]string, error)
	Revisions(name string) ([]storage.Revision, error)
	GetRevision(name, id string) (*gff.GFF, error)
	Stats() (storage.Stats, error)
}
