package model

import "time"

// ValidationSummary memetakan tag kanonik ke jumlah vote-nya.
type ValidationSummary map[string]int64

// NewValidationSummary membuat ringkasan dengan keempat tag bernilai 0.
func NewValidationSummary() ValidationSummary {
	s := make(ValidationSummary, len(ValidationTags))
	for _, tag := range ValidationTags {
		s[tag] = 0
	}
	return s
}

// Add menambahkan hitungan untuk tag. Tag di luar daftar kanonik diabaikan.
func (s ValidationSummary) Add(tag string, count int64) {
	if _, ok := s[tag]; ok {
		s[tag] += count
	}
}

// ReportView adalah bentuk laporan yang dikirim ke frontend:
// kolom tersimpan + URL gambar absolut + ringkasan validasi.
type ReportView struct {
	ID           uint              `json:"id"`
	UserID       uint              `json:"user_id"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	LocationName string            `json:"location_name"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Category     string            `json:"category"`
	ImageURL     *string           `json:"image_url"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	Image        *string           `json:"image"`
	Validations  ValidationSummary `json:"validations"`
}

// NewReportView menyusun view dari laporan tersimpan. image boleh nil.
func NewReportView(r Report, image *string, summary ValidationSummary) ReportView {
	if summary == nil {
		summary = NewValidationSummary()
	}
	return ReportView{
		ID:           r.ID,
		UserID:       r.UserID,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		LocationName: r.LocationName,
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		ImageURL:     r.ImageURL,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		Image:        image,
		Validations:  summary,
	}
}

// ReportFilter membatasi hasil list laporan. Field kosong = tanpa filter.
type ReportFilter struct {
	Status   string
	Category string
}

// ReportStats adalah ringkasan untuk dashboard admin.
type ReportStats struct {
	Total            int64            `json:"total"`
	ByStatus         map[string]int64 `json:"byStatus"`
	ByCategory       map[string]int64 `json:"byCategory"`
	TotalValidations int64            `json:"totalValidations"`
	Activity         map[string]int64 `json:"activity,omitempty"`
}

// NewReportStats membuat stats dengan semua key status & kategori bernilai 0.
func NewReportStats() *ReportStats {
	st := &ReportStats{
		ByStatus:   make(map[string]int64, len(Statuses)),
		ByCategory: make(map[string]int64, len(Categories)),
	}
	for _, s := range Statuses {
		st.ByStatus[s] = 0
	}
	for _, c := range Categories {
		st.ByCategory[c] = 0
	}
	return st
}
