package vault

import "time"

// Document es el registro de un archivo subido al vault (receta, estudio,
// certificado de vacuna). El blob vive en el storage externo; acá solo
// guardamos metadata + URL.
type Document struct {
	ID      string
	EntryID string
	PetID   string

	FileURL  string
	FileType string
	FileName string
	FileSize int64

	UploadedAt time.Time
}
