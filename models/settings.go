package models

import "time"

// SystemSettings is a singleton collection; exactly one row is expected and it
// is created lazily with defaults when missing.
type SystemSettings struct {
	ID                string    `json:"id"`
	CompanyName       string    `json:"company_name"`
	AdminEmail        string    `json:"admin_email,omitempty"`
	RetentionDays     int       `json:"retention_days"`
	AlertEmailEnabled bool      `json:"alert_email_enabled"`
	SMTPHost          string    `json:"smtp_host,omitempty"`
	SMTPPort          int       `json:"smtp_port,omitempty"`
	SMTPUser          string    `json:"smtp_user,omitempty"`
	SMTPPass          string    `json:"smtp_pass,omitempty"`
	SMTPFrom          string    `json:"smtp_from,omitempty"`
	AlertSMSEnabled   bool      `json:"alert_sms_enabled"`
	SMSProvider       string    `json:"sms_provider,omitempty"`
	SMSAccountSID     string    `json:"sms_account_sid,omitempty"`
	SMSAuthToken      string    `json:"sms_auth_token,omitempty"`
	SMSFrom           string    `json:"sms_from,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SystemCommand requests an out-of-band action (e.g. send a test email) from
// an external worker. The console inserts a pending row and polls it.
type SystemCommand struct {
	ID          string         `json:"id"`
	CommandType string         `json:"command_type"`
	Payload     map[string]any `json:"payload,omitempty"`
	Status      string         `json:"status"` // pending, processing, completed, failed
	Result      string         `json:"result,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
