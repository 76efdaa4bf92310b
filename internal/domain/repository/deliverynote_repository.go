package repository

import "github.com/jhoicas/albaranes-api/internal/domain/entity"

// DeliveryNoteRepository define el puerto de persistencia para DeliveryNote.
type DeliveryNoteRepository interface {
	Create(note *entity.DeliveryNote) error
	GetActive(id string) (*entity.DeliveryNote, error)
	GetAny(id string) (*entity.DeliveryNote, error)

	// ListByCreators lista los albaranes activos creados por cualquiera de
	// los usuarios indicados (el solicitante y sus compañeros de compañía).
	ListByCreators(creatorIDs []string) ([]*entity.DeliveryNote, error)

	// MarkSigned fija signed=true y la URL de la firma en una sola sentencia
	// con guarda (WHERE NOT signed). Devuelve false si el albarán ya estaba
	// firmado o no existe; la transición es de un solo sentido.
	MarkSigned(id, signatureURL string) (bool, error)

	Archive(id string) error
	Restore(id string) error
	Purge(id string) error
}
