package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/pkg/model"
)

// ContractInput enumerates the fields accepted when creating a service
// contract. PatientID and at least one service id are required. The total
// amount is summed from the priced services once at creation; service ids
// that do not resolve contribute zero.
type ContractInput struct {
	PatientID  string   `json:"patientId"`
	ServiceIDs []string `json:"services"`
	Date       string   `json:"date"`
	SignedDate string   `json:"signedDate"`
	ValidUntil string   `json:"validUntil"`
	Notes      string   `json:"notes"`
}

func (in ContractInput) validate() error {
	var missing []string
	if in.PatientID == "" {
		missing = append(missing, "patientId")
	}
	if len(in.ServiceIDs) == 0 {
		missing = append(missing, "services")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// AddContract creates a contract and returns the stored entity. The
// contract number is sequential within the creation year; uniqueness is
// best-effort like the rest of the generated identifiers.
func (r *Clinic) AddContract(ctx context.Context, in ContractInput) (*model.Contract, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := r.now()
	contract := model.Contract{
		ID:         r.newID(),
		PatientID:  in.PatientID,
		Date:       in.Date,
		ServiceIDs: in.ServiceIDs,
		Status:     model.ContractStatusActive,
		Payment:    model.PaymentStatusUnpaid,
		SignedDate: in.SignedDate,
		ValidUntil: in.ValidUntil,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := r.update(ctx, func(db *model.Database) error {
		contract.Number = fmt.Sprintf("C-%d-%03d", now.Year(), len(db.Contracts)+1)

		total := 0
		for _, serviceID := range in.ServiceIDs {
			for _, s := range db.Services {
				if s.ID == serviceID {
					total += s.Price
					break
				}
			}
		}
		contract.TotalAmount = total

		db.Contracts = append(db.Contracts, contract)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("contract added",
		zap.String("contract_id", contract.ID),
		zap.String("number", contract.Number),
		zap.Int("total_amount", contract.TotalAmount),
	)
	return &contract, nil
}

// GetAllContracts returns the full contract collection
func (r *Clinic) GetAllContracts(ctx context.Context) ([]model.Contract, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if db.Contracts == nil {
		return []model.Contract{}, nil
	}
	return db.Contracts, nil
}

// GetContractByID returns the contract with the given id, or nil without
// an error when no such contract exists.
func (r *Clinic) GetContractByID(ctx context.Context, id string) (*model.Contract, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range db.Contracts {
		if db.Contracts[i].ID == id {
			return &db.Contracts[i], nil
		}
	}
	return nil, nil
}

// UpdateContractStatus sets the status of the contract with the given id
// and returns the updated entity, or nil without an error when the id does
// not match anything.
func (r *Clinic) UpdateContractStatus(ctx context.Context, id string, status model.ContractStatus) (*model.Contract, error) {
	var updated *model.Contract
	err := r.update(ctx, func(db *model.Database) error {
		updated = nil
		for i := range db.Contracts {
			if db.Contracts[i].ID == id {
				db.Contracts[i].Status = status
				db.Contracts[i].UpdatedAt = r.now()
				c := db.Contracts[i]
				updated = &c
				return nil
			}
		}
		return errNoChange
	})
	if err == errNoChange {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("contract status updated",
		zap.String("contract_id", id),
		zap.String("status", string(status)),
	)
	return updated, nil
}

// UpdateContractPaymentStatus sets the payment status of the contract with
// the given id and returns the updated entity, or nil without an error
// when the id does not match anything.
func (r *Clinic) UpdateContractPaymentStatus(ctx context.Context, id string, payment model.PaymentStatus) (*model.Contract, error) {
	var updated *model.Contract
	err := r.update(ctx, func(db *model.Database) error {
		updated = nil
		for i := range db.Contracts {
			if db.Contracts[i].ID == id {
				db.Contracts[i].Payment = payment
				db.Contracts[i].UpdatedAt = r.now()
				c := db.Contracts[i]
				updated = &c
				return nil
			}
		}
		return errNoChange
	})
	if err == errNoChange {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("contract payment status updated",
		zap.String("contract_id", id),
		zap.String("payment_status", string(payment)),
	)
	return updated, nil
}
