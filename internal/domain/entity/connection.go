package entity

// Dashboards ping every minute; connections silent past the tolerance
// are reaped by the cleaner job.
const (
	HeartbeatPeriodMillis    = int64(60 * 1000)
	HeartbeatToleranceMillis = int64(10 * 1000)
)

// Connection is one live dashboard websocket registration. Admin
// dashboards subscribe here to receive advance-request notifications.
type Connection struct {
	ConnectionID    string `gorm:"primaryKey;autoIncrement:false"`
	EmployeeID      int64  `gorm:"not null;index"`
	ExpiresAt       int64  `gorm:"not null"`
	LastHeartbeatAt int64  `gorm:"not null;index"`
	CreatedAt       int64  `gorm:"not null"`
}
