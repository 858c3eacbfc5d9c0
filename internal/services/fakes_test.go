package services

import (
	"context"
	"sync"

	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/repository"
)

// fakeServiceRepo is an in-memory ServiceRepository that records writes
type fakeServiceRepo struct {
	mu           sync.Mutex
	services     map[string]*models.Service
	usernames    map[string]string
	identifiers  map[string]string
	dedicatedIPs map[string]string
	customFields map[string]string
	updateErr    error
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{
		services:     map[string]*models.Service{},
		usernames:    map[string]string{},
		identifiers:  map[string]string{},
		dedicatedIPs: map[string]string{},
		customFields: map[string]string{},
	}
}

func (f *fakeServiceRepo) Get(_ context.Context, serviceID string) (*models.Service, error) {
	if svc, ok := f.services[serviceID]; ok {
		return svc, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeServiceRepo) SetServerIdentifier(_ context.Context, serviceID, serverID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.identifiers[serviceID] = serverID
	return nil
}

func (f *fakeServiceRepo) SetUsername(_ context.Context, serviceID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.usernames[serviceID] = username
	return nil
}

func (f *fakeServiceRepo) SetDedicatedIP(_ context.Context, serviceID, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.dedicatedIPs[serviceID] = address
	return nil
}

func (f *fakeServiceRepo) SetCustomField(_ context.Context, serviceID, fieldName, fieldValue string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customFields[serviceID+"/"+fieldName] = fieldValue
	return nil
}

// fakePanelServerRepo is an in-memory PanelServerRepository
type fakePanelServerRepo struct {
	records map[string]*models.PanelServerRecord
	byGroup map[string]*models.PanelServerRecord
	getErr  error
	findErr error
}

func newFakePanelServerRepo() *fakePanelServerRepo {
	return &fakePanelServerRepo{
		records: map[string]*models.PanelServerRecord{},
		byGroup: map[string]*models.PanelServerRecord{},
	}
}

func (f *fakePanelServerRepo) Get(_ context.Context, serverRecordID string) (*models.PanelServerRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if record, ok := f.records[serverRecordID]; ok {
		return record, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePanelServerRepo) FindByGroupAndType(_ context.Context, groupID, serverType string) (*models.PanelServerRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if record, ok := f.byGroup[groupID]; ok && record.Type == serverType {
		return record, nil
	}
	return nil, repository.ErrNotFound
}

// fakeProductRepo is an in-memory ProductRepository
type fakeProductRepo struct {
	products map[string]*models.Product
	getErr   error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*models.Product{}}
}

func (f *fakeProductRepo) Get(_ context.Context, productID string) (*models.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if product, ok := f.products[productID]; ok {
		return product, nil
	}
	return nil, repository.ErrNotFound
}
