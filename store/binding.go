package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const ormLogPrefix = "orm"

var (
	ErrBindingNotFound  = fmt.Errorf("model binding not found")
	ErrBindingImmutable = fmt.Errorf("model binding already populated")
)

// BindingStore keeps the country-model bindings of forecast runs.
type BindingStore interface {
	Ping() error

	CreateBinding(runID, country string) (*schema.ModelBinding, error)
	// populate the model ids of a binding, allowed once
	SetBindingModel(id uuid.UUID, projectID, modelID string) error
	GetBinding(id uuid.UUID) (*schema.ModelBinding, error)
	LatestBinding(country string) (*schema.ModelBinding, error)
}

// BindingORMStore is an implementation of BindingStore
type BindingORMStore struct {
	ormDB *gorm.DB
}

func NewBindingStore(ormDB *gorm.DB) *BindingORMStore {
	return &BindingORMStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *BindingORMStore) Ping() error {
	return s.ormDB.DB().Ping()
}

func (s *BindingORMStore) CreateBinding(runID, country string) (*schema.ModelBinding, error) {
	b := schema.ModelBinding{
		ID:      uuid.New(),
		RunID:   runID,
		Country: country,
	}

	if err := s.ormDB.Create(&b).Error; err != nil {
		log.WithFields(log.Fields{"prefix": ormLogPrefix, "run": runID, "country": country, "error": err}).Error("create binding")
		return nil, err
	}

	return &b, nil
}

func (s *BindingORMStore) SetBindingModel(id uuid.UUID, projectID, modelID string) error {
	res := s.ormDB.Model(&schema.ModelBinding{}).
		Where("id = ? AND project_id = ? AND model_id = ?", id, "", "").
		Updates(map[string]interface{}{
			"project_id": projectID,
			"model_id":   modelID,
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		if _, err := s.GetBinding(id); err != nil {
			return err
		}
		return ErrBindingImmutable
	}

	return nil
}

func (s *BindingORMStore) GetBinding(id uuid.UUID) (*schema.ModelBinding, error) {
	var b schema.ModelBinding
	if err := s.ormDB.Where("id = ?", id).First(&b).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrBindingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *BindingORMStore) LatestBinding(country string) (*schema.ModelBinding, error) {
	var b schema.ModelBinding
	if err := s.ormDB.Where("country = ?", country).Order("created_at desc").First(&b).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrBindingNotFound
		}
		return nil, err
	}
	return &b, nil
}
