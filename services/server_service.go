package services

import (
	"context"
	"strings"
	"time"

	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/models"
)

type ServerService struct {
	rows RowStore
}

func NewServerService(rows RowStore) *ServerService {
	return &ServerService{rows: rows}
}

type ServerInput struct {
	Name      string `json:"name" binding:"required"`
	IPAddress string `json:"ip_address" binding:"required"`
	Port      int    `json:"port" binding:"required"`
	Status    string `json:"status,omitempty"`
	GPUModel  string `json:"gpu_model,omitempty"`
	CPUCores  int    `json:"cpu_cores,omitempty"`
	MemoryGB  int    `json:"memory_gb,omitempty"`
}

func (s *ServerService) List(ctx context.Context) ([]models.AIServer, error) {
	var servers []models.AIServer
	q := gateway.NewQuery().OrderBy("created_at", false)
	if err := s.rows.Select(ctx, "ai_servers", q, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// ListByName is the ordering used by deployment target pickers.
func (s *ServerService) ListByName(ctx context.Context) ([]models.AIServer, error) {
	var servers []models.AIServer
	q := gateway.NewQuery().OrderBy("name", true)
	if err := s.rows.Select(ctx, "ai_servers", q, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// Search filters by case-insensitive substring over name and ip address.
func (s *ServerService) Search(servers []models.AIServer, query string) []models.AIServer {
	if query == "" {
		return servers
	}
	needle := strings.ToLower(query)
	matched := make([]models.AIServer, 0, len(servers))
	for _, srv := range servers {
		if strings.Contains(strings.ToLower(srv.Name), needle) ||
			strings.Contains(strings.ToLower(srv.IPAddress), needle) {
			matched = append(matched, srv)
		}
	}
	return matched
}

func (s *ServerService) Create(ctx context.Context, input ServerInput) ([]models.AIServer, error) {
	if input.Status == "" {
		input.Status = "online"
	}
	if err := s.rows.Insert(ctx, "ai_servers", input, nil); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *ServerService) Update(ctx context.Context, id string, input ServerInput) ([]models.AIServer, error) {
	patch := struct {
		ServerInput
		UpdatedAt string `json:"updated_at"`
	}{input, time.Now().UTC().Format(time.RFC3339)}

	if err := s.rows.Update(ctx, "ai_servers", patch, gateway.NewQuery().Eq("id", id)); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *ServerService) Delete(ctx context.Context, id string) ([]models.AIServer, error) {
	if err := s.rows.Delete(ctx, "ai_servers", gateway.NewQuery().Eq("id", id)); err != nil {
		return nil, err
	}
	return s.List(ctx)
}
