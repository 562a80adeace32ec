package repository

import "github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"

// AssignmentRequestRepository puerto de persistencia para solicitudes de asignación.
type AssignmentRequestRepository interface {
	Create(req *entity.AssignmentRequest) error
	GetByID(id string) (*entity.AssignmentRequest, error)
	Update(req *entity.AssignmentRequest) error
	ListByStatus(status string) ([]*entity.AssignmentRequest, error)
	ListByEmployee(employeeID string) ([]*entity.AssignmentRequest, error)
	List(limit, offset int) ([]*entity.AssignmentRequest, error)
}
