package utils

// Bentuk respons JSON dipertahankan sama dengan yang sudah dipakai frontend:
// sukses  : { "message": "Laporan berhasil disimpan", ... }
// gagal   : { "error": "Gagal mengambil data laporan" }
// login   : { "success": true/false, "message": "...", "user": {...} }

// MessageResponse dipakai untuk respons sukses yang hanya berisi pesan.
// Juga dipakai untuk penolakan vote ganda (400), sesuai kontrak lama.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse dipakai untuk error validasi (400) dan error server (500).
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateReportResponse adalah respons POST /api/reports.
type CreateReportResponse struct {
	Message  string `json:"message"`
	ReportID uint   `json:"reportId"`
	Status   string `json:"status"`
}

// LoginUser adalah data user yang dikirim setelah login berhasil.
type LoginUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse adalah respons POST /api/login.
// Token dan User hanya terisi jika Success = true.
type LoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    *LoginUser `json:"user,omitempty"`
	Token   string     `json:"token,omitempty"`
}

// BuildMessage membuat MessageResponse.
func BuildMessage(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// BuildError membuat ErrorResponse.
func BuildError(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
