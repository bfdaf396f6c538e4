package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"
)

const defaultCompanyName = "Real Star Security"

// ErrTestEmailTimeout is returned when the external worker never picks up the
// test-email command within the poll budget.
var ErrTestEmailTimeout = errors.New("timeout: no response from backend worker")

// PasswordUpdater is the slice of the gateway auth API the settings view
// needs. *gateway.Client satisfies it.
type PasswordUpdater interface {
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
}

// SettingsService manages the singleton configuration row and the
// command-row protocol for out-of-band test actions.
type SettingsService struct {
	rows RowStore
	auth PasswordUpdater

	// Test-command poll protocol: poll every 2s, give up after 10 attempts.
	CommandPollInterval time.Duration
	CommandMaxAttempts  int
}

func NewSettingsService(rows RowStore, auth PasswordUpdater) *SettingsService {
	return &SettingsService{
		rows:                rows,
		auth:                auth,
		CommandPollInterval: 2 * time.Second,
		CommandMaxAttempts:  10,
	}
}

// SettingsInput is the whole settings form. All tabs share this one object
// and saving writes it back in full regardless of the active tab.
type SettingsInput struct {
	CompanyName       string `json:"company_name"`
	AdminEmail        string `json:"admin_email"`
	RetentionDays     int    `json:"retention_days"`
	AlertEmailEnabled bool   `json:"alert_email_enabled"`
	SMTPHost          string `json:"smtp_host"`
	SMTPPort          int    `json:"smtp_port"`
	SMTPUser          string `json:"smtp_user"`
	SMTPPass          string `json:"smtp_pass"`
	SMTPFrom          string `json:"smtp_from"`
	AlertSMSEnabled   bool   `json:"alert_sms_enabled"`
	SMSProvider       string `json:"sms_provider"`
	SMSAccountSID     string `json:"sms_account_sid"`
	SMSAuthToken      string `json:"sms_auth_token"`
	SMSFrom           string `json:"sms_from"`
}

// Load returns the singleton settings row, creating it with defaults when the
// collection is still empty.
func (s *SettingsService) Load(ctx context.Context) (*models.SystemSettings, error) {
	var settings []models.SystemSettings
	if err := s.rows.Select(ctx, "system_settings", gateway.NewQuery().Limit(1), &settings); err != nil {
		return nil, err
	}
	if len(settings) > 0 {
		return &settings[0], nil
	}

	row := map[string]string{"company_name": defaultCompanyName}
	var created []models.SystemSettings
	if err := s.rows.Insert(ctx, "system_settings", row, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, errors.New("gateway returned no settings row")
	}
	return &created[0], nil
}

// Save writes the entire settings object back and returns the fresh row.
func (s *SettingsService) Save(ctx context.Context, id string, input SettingsInput) (*models.SystemSettings, error) {
	patch := struct {
		SettingsInput
		UpdatedAt string `json:"updated_at"`
	}{input, time.Now().UTC().Format(time.RFC3339)}

	if err := s.rows.Update(ctx, "system_settings", patch, gateway.NewQuery().Eq("id", id)); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// TestEmail inserts a pending command row carrying the current form (with the
// admin email pointed at the target) and polls until the worker reports a
// result or the attempt budget runs out.
func (s *SettingsService) TestEmail(ctx context.Context, input SettingsInput, targetEmail string) (string, error) {
	if targetEmail == "" {
		return "", errors.New("target email address is required")
	}
	input.AdminEmail = targetEmail

	row := map[string]any{
		"command_type": "test_email",
		"payload":      input,
		"status":       "pending",
	}
	var created []models.SystemCommand
	if err := s.rows.Insert(ctx, "system_commands", row, &created); err != nil {
		return "", fmt.Errorf("failed to trigger test: %w", err)
	}
	if len(created) == 0 {
		return "", errors.New("gateway returned no command row")
	}
	commandID := created[0].ID

	for attempt := 0; attempt < s.CommandMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.CommandPollInterval):
		}

		var polled []models.SystemCommand
		q := gateway.NewQuery().Eq("id", commandID).Limit(1)
		if err := s.rows.Select(ctx, "system_commands", q, &polled); err != nil {
			continue
		}
		if len(polled) == 0 {
			continue
		}
		cmd := polled[0]
		if cmd.Status == "pending" || cmd.Status == "processing" {
			continue
		}
		if cmd.Status == "completed" {
			return cmd.Result, nil
		}
		return "", fmt.Errorf("test email failed: %s", cmd.Result)
	}
	return "", ErrTestEmailTimeout
}

// ChangePassword validates locally then submits to the gateway auth service.
func (s *SettingsService) ChangePassword(ctx context.Context, accessToken, password, confirm string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	return s.auth.UpdatePassword(ctx, accessToken, password)
}
