package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/pkg/model"
)

// ServiceInput enumerates the fields accepted when creating a catalog
// service. Code and Name are required.
type ServiceInput struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        int      `json:"price"`
	Category     string   `json:"category"`
	Duration     int      `json:"duration"`
	Requirements string   `json:"requirements"`
	Tags         []string `json:"tags"`
}

func (in ServiceInput) validate() error {
	var missing []string
	if in.Code == "" {
		missing = append(missing, "code")
	}
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// AddService creates a catalog entry and returns the stored entity
func (r *Clinic) AddService(ctx context.Context, in ServiceInput) (*model.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	service := model.Service{
		ID:           r.newID(),
		Code:         in.Code,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		Duration:     in.Duration,
		IsActive:     true,
		Requirements: in.Requirements,
		Tags:         in.Tags,
	}
	if service.Tags == nil {
		service.Tags = []string{}
	}

	err := r.update(ctx, func(db *model.Database) error {
		db.Services = append(db.Services, service)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("service added",
		zap.String("service_id", service.ID),
		zap.String("code", service.Code),
	)
	return &service, nil
}

// GetAllServices returns the full service catalog
func (r *Clinic) GetAllServices(ctx context.Context) ([]model.Service, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if db.Services == nil {
		return []model.Service{}, nil
	}
	return db.Services, nil
}

// GetServiceByID returns the service with the given id, or nil without an
// error when no such service exists.
func (r *Clinic) GetServiceByID(ctx context.Context, id string) (*model.Service, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range db.Services {
		if db.Services[i].ID == id {
			return &db.Services[i], nil
		}
	}
	return nil, nil
}

// DeleteService removes the service with the given id. Succeeds even when
// the id is absent; appointments and contracts referencing it dangle.
func (r *Clinic) DeleteService(ctx context.Context, id string) error {
	err := r.update(ctx, func(db *model.Database) error {
		kept := db.Services[:0]
		for _, s := range db.Services {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		db.Services = kept
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("service deleted", zap.String("service_id", id))
	return nil
}
