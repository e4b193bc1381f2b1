package entity

// Benefit is a perk employees can browse on their dashboard. A nil
// CompanyID marks a platform-wide benefit visible to every tenant.
type Benefit struct {
	ID        int64  `gorm:"primaryKey"`
	CompanyID *int64 `gorm:"index"`

	Name        string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`

	// ImageKey is the S3 object key of the benefit card image, empty
	// when no image was uploaded.
	ImageKey string `gorm:"not null;default:''"`

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`
}
