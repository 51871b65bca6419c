package repository

import (
	"StaffGate/entity"
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateCompany inserts a new company record and returns its id.
func (m *MongoDB) CreateCompany(ctx context.Context, company *entity.Company) (string, error) {
	company.ID = uuid.NewString()
	company.CreatedAt = time.Now()

	if _, err := m.collection(companiesCollection).InsertOne(ctx, company); err != nil {
		return "", m.writeError(err)
	}
	return company.ID, nil
}

// GetCompanyByName looks up a company by its exact name, returning nil
// when it does not exist.
func (m *MongoDB) GetCompanyByName(ctx context.Context, name string) (*entity.Company, error) {
	var company entity.Company
	err := m.collection(companiesCollection).FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&company)
	if err != nil {
		return nil, m.findError(err)
	}
	return &company, nil
}
