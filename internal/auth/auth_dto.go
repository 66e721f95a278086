package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password" binding:"required"`
	IsFirstLogin bool   `json:"is_first_login"`
}

type TemporaryPasswordRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	EmployeeID            string `json:"employee_id"`
	Email                 string `json:"email"`
	FullName              string `json:"full_name"`
	RequirePasswordChange bool   `json:"require_password_change"`
}

type TemporaryPasswordResponse struct {
	EmployeeID string `json:"employee_id"`
	// Password is returned exactly once; only the hash is stored.
	Password string `json:"password"`
}
