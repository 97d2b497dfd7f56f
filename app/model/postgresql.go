package model

import "time"

// Role user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Status laporan. Laporan baru selalu pending.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Kategori laporan sesuai pilihan di halaman lapor.
const (
	CategoryDanger = "danger"
	CategoryLamp   = "lamp"
	CategoryRoad   = "road"
	CategoryOther  = "other"
)

// Tag validasi komunitas. Hanya keempat tag ini yang muncul di ringkasan.
const (
	TagValid  = "Benar/Valid"
	TagDark   = "Memang Gelap"
	TagSafe   = "Sudah Aman"
	TagPolice = "Ada Polisi"
)

// Statuses berisi semua status yang sah, urut sesuai alur review.
var Statuses = []string{StatusPending, StatusVerified, StatusRejected}

// Categories berisi semua kategori yang sah.
var Categories = []string{CategoryDanger, CategoryLamp, CategoryRoad, CategoryOther}

// ValidationTags berisi tag kanonik untuk ringkasan validasi.
var ValidationTags = []string{TagValid, TagDark, TagSafe, TagPolice}

// IsValidStatus mengecek apakah status termasuk salah satu dari tiga status laporan.
func IsValidStatus(status string) bool {
	return contains(Statuses, status)
}

// IsValidCategory mengecek kategori laporan.
func IsValidCategory(category string) bool {
	return contains(Categories, category)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// User merepresentasikan pelapor anonim (per perangkat) atau akun admin.
// AnonymousID unik per perangkat; Username & PasswordHash hanya terisi untuk admin.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Role         string    `gorm:"type:varchar(10);not null;default:'user';check:role IN ('user','admin')" json:"role"`
	AnonymousID  *string   `gorm:"type:varchar(100);uniqueIndex" json:"anonymous_id,omitempty"`
	Username     *string   `gorm:"type:varchar(50);uniqueIndex" json:"username,omitempty"`
	PasswordHash *string   `gorm:"type:varchar(255)" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Report adalah laporan kejadian yang ditandai lokasi.
// ImageURL menyimpan path relatif di media store (misal: uploads/xxx.jpg).
type Report struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Latitude     float64   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude    float64   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	LocationName string    `gorm:"type:varchar(255)" json:"location_name"`
	Title        string    `gorm:"type:varchar(255)" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"type:varchar(20);not null;check:category IN ('danger','lamp','road','other')" json:"category"`
	ImageURL     *string   `gorm:"type:varchar(255)" json:"image_url"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending';index;check:status IN ('pending','verified','rejected')" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// Validation adalah satu vote/tag dari komunitas terhadap sebuah laporan.
// Kombinasi (report_id, tag_type, user_identifier) unik.
type Validation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReportID       uint      `gorm:"not null;uniqueIndex:idx_validation_vote,priority:1" json:"report_id"`
	Report         *Report   `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	TagType        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_validation_vote,priority:2" json:"tag_type"`
	UserIdentifier string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_validation_vote,priority:3" json:"user_identifier"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
