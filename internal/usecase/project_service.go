package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/domain/role"
)

// ProjectService manages projects and the firm's client roster. Derived
// stat columns are owned by ProjectStatsService and never set here.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
	logger      *zap.Logger
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

type ProjectInput struct {
	Name                    string
	Description             string
	Phase                   string
	Status                  model.ProjectStatus
	ClientID                *int64
	StartDate               *time.Time
	EstimatedCompletionDate *time.Time
}

// CreateProject creates a project. Interns may view projects but not
// create them.
func (s *ProjectService) CreateProject(ctx context.Context, actor role.Actor, input ProjectInput) (*model.Project, error) {
	if !actor.Role.CanAssignTasks() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "creating projects")
	}
	if input.Name == "" {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "name is required")
	}

	if input.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *input.ClientID); err != nil {
			return nil, err
		}
	}

	status := input.Status
	if status == "" {
		status = model.ProjectStatusPlanning
	}

	project := &model.Project{
		Name:                    input.Name,
		Description:             input.Description,
		Phase:                   input.Phase,
		Status:                  status,
		ClientID:                input.ClientID,
		StartDate:               input.StartDate,
		EstimatedCompletionDate: input.EstimatedCompletionDate,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.Int64("project_id", project.ID),
		zap.String("name", project.Name),
		zap.String("actor", actor.ID.String()))

	return project, nil
}

// ProjectPatch carries optional edits; nil fields stay untouched.
type ProjectPatch struct {
	Name                    *string
	Description             *string
	Phase                   *string
	Status                  *model.ProjectStatus
	ClientID                *int64
	StartDate               *time.Time
	EstimatedCompletionDate *time.Time
}

// UpdateProject applies a patch to the descriptive fields of a project. A
// project that reached completed keeps that status regardless of the patch;
// the rollup ratchet would force it straight back anyway.
func (s *ProjectService) UpdateProject(ctx context.Context, actor role.Actor, id int64, patch ProjectPatch) (*model.Project, error) {
	if !actor.Role.CanAssignTasks() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "editing projects")
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, domainErrors.NewValidationError(actor.ID.String(), "name cannot be empty")
		}
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Phase != nil {
		project.Phase = *patch.Phase
	}
	if patch.Status != nil && project.Status != model.ProjectStatusCompleted {
		project.Status = *patch.Status
	}
	if patch.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *patch.ClientID); err != nil {
			return nil, err
		}
		project.ClientID = patch.ClientID
	}
	if patch.StartDate != nil {
		project.StartDate = patch.StartDate
	}
	if patch.EstimatedCompletionDate != nil {
		project.EstimatedCompletionDate = patch.EstimatedCompletionDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes a project. Chief only.
func (s *ProjectService) DeleteProject(ctx context.Context, actor role.Actor, id int64) error {
	if actor.Role != role.RoleChiefArchitect {
		return domainErrors.NewNotAuthorizedError(actor.ID.String(), "deleting projects")
	}
	return s.projectRepo.Delete(ctx, id)
}

func (s *ProjectService) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return s.projectRepo.List(ctx)
}

type ClientInput struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Notes   string
}

// CreateClient adds a client to the roster.
func (s *ProjectService) CreateClient(ctx context.Context, actor role.Actor, input ClientInput) (*model.Client, error) {
	if !actor.Role.CanAssignTasks() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing clients")
	}
	if input.Name == "" {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "name is required")
	}

	client := &model.Client{
		Name:    input.Name,
		Company: input.Company,
		Email:   input.Email,
		Phone:   input.Phone,
		Notes:   input.Notes,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// ClientPatch carries optional edits; nil fields stay untouched.
type ClientPatch struct {
	Name    *string
	Company *string
	Email   *string
	Phone   *string
	Notes   *string
}

func (s *ProjectService) UpdateClient(ctx context.Context, actor role.Actor, id int64, patch ClientPatch) (*model.Client, error) {
	if !actor.Role.CanAssignTasks() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing clients")
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, domainErrors.NewValidationError(actor.ID.String(), "name cannot be empty")
		}
		client.Name = *patch.Name
	}
	if patch.Company != nil {
		client.Company = *patch.Company
	}
	if patch.Email != nil {
		client.Email = *patch.Email
	}
	if patch.Phone != nil {
		client.Phone = *patch.Phone
	}
	if patch.Notes != nil {
		client.Notes = *patch.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ProjectService) DeleteClient(ctx context.Context, actor role.Actor, id int64) error {
	if actor.Role != role.RoleChiefArchitect {
		return domainErrors.NewNotAuthorizedError(actor.ID.String(), "deleting clients")
	}
	return s.clientRepo.Delete(ctx, id)
}

func (s *ProjectService) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *ProjectService) ListClients(ctx context.Context) ([]*model.Client, error) {
	return s.clientRepo.List(ctx)
}
