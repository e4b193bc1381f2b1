package repository

import (
	"gorm.io/gorm"

	"adelanta/internal/domain/entity"
)

type DefaultConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *DefaultConnectionRepository {
	return &DefaultConnectionRepository{db: db}
}

func (c *DefaultConnectionRepository) Save(conn *entity.Connection) error {
	return c.db.Save(conn).Error
}

func (c *DefaultConnectionRepository) Delete(connID string) error {
	return c.db.Delete(&entity.Connection{}, "connection_id = ?", connID).Error
}

func (c *DefaultConnectionRepository) FindByEmployeeID(employeeID int64) ([]string, error) {
	var ids []string
	result := c.db.Model(&entity.Connection{}).
		Where("employee_id = ?", employeeID).
		Pluck("connection_id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

func (c *DefaultConnectionRepository) FindAll() ([]string, error) {
	var ids []string
	result := c.db.Model(&entity.Connection{}).Pluck("connection_id", &ids)
	return ids, result.Error
}

// FindStale returns connections that expired or missed their heartbeat
// window. Swept periodically by the cleaner job.
func (c *DefaultConnectionRepository) FindStale(now int64, hbLimit int64) ([]*entity.Connection, error) {
	var conns []*entity.Connection
	err := c.db.
		Where("expires_at < ? OR last_heartbeat_at < ?", now, hbLimit).
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	return conns, nil
}

func (c *DefaultConnectionRepository) UpdateHeartbeat(connID string, now int64) error {
	return c.db.Model(&entity.Connection{}).
		Where("connection_id = ?", connID).
		Update("last_heartbeat_at", now).Error
}
