package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
)

// defaultHorizonYears is the planning horizon assumed for projects with no
// estimated completion date.
const defaultHorizonYears = 3

// ProjectStats are the derived numbers written back onto the project row.
type ProjectStats struct {
	ProjectID          int64                `json:"project_id"`
	TotalTasks         int                  `json:"total_tasks"`
	CompletedTasks     int                  `json:"completed_tasks"`
	TotalImages        int                  `json:"total_images"`
	TaskPercent        float64              `json:"task_percent"`
	TimeElapsedPercent float64              `json:"time_elapsed_percent"`
	DisplayedPercent   float64              `json:"displayed_percent"`
	Status             model.ProjectStatus  `json:"status"`
}

// DisplayedProgress picks the progress figure shown to clients: the larger
// of task completion and calendar time elapsed. Progress shown in the
// gallery must never regress when time passes, so the two metrics are
// combined with max rather than averaged. Swap this function to change the
// policy.
func DisplayedProgress(taskPercent, timeElapsedPercent float64) float64 {
	if taskPercent > timeElapsedPercent {
		return taskPercent
	}
	return timeElapsedPercent
}

// ProjectStatsService recomputes derived project statistics from child
// tasks and gallery images and writes them back, force-transitioning the
// project status where the numbers demand it.
type ProjectStatsService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	imageRepo   repository.ProjectImageRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewProjectStatsService creates a new project aggregation service.
func NewProjectStatsService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	imageRepo repository.ProjectImageRepository,
	logger *zap.Logger,
) *ProjectStatsService {
	return &ProjectStatsService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		imageRepo:   imageRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// RecomputeStats reads all child tasks and images of a project, recomputes
// its progress figures and persists them. Status transitions applied here
// are a one-way ratchet: a project with work in flight is forced to
// in_progress, a project with every task completed is forced to completed,
// and a completed project is never automatically reverted.
func (s *ProjectStatsService) RecomputeStats(ctx context.Context, projectID int64) (*ProjectStats, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	imageCount, err := s.imageRepo.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	total := len(tasks)
	completed := 0
	for _, task := range tasks {
		if task.IsCompleted() {
			completed++
		}
	}

	taskPercent := 0.0
	if total > 0 {
		taskPercent = float64(completed) / float64(total) * 100
	}

	timePercent := s.timeElapsedPercent(project)
	displayed := DisplayedProgress(taskPercent, timePercent)

	status := project.Status
	if project.Status != model.ProjectStatusCompleted && total > 0 {
		switch {
		case completed == total:
			status = model.ProjectStatusCompleted
		case project.Status != model.ProjectStatusInProgress:
			status = model.ProjectStatusInProgress
		}
	}

	fields := map[string]interface{}{
		"total_tasks":          total,
		"completed_tasks":      completed,
		"total_images":         int(imageCount),
		"completion_percent":   taskPercent,
		"time_elapsed_percent": timePercent,
		"displayed_percent":    displayed,
	}
	if status != project.Status {
		fields["status"] = status
		s.logger.Info("Project status transitioned by aggregation",
			zap.Int64("project_id", projectID),
			zap.String("from", string(project.Status)),
			zap.String("to", string(status)))
	}

	if err := s.projectRepo.UpdateFields(ctx, projectID, fields); err != nil {
		return nil, err
	}

	return &ProjectStats{
		ProjectID:          projectID,
		TotalTasks:         total,
		CompletedTasks:     completed,
		TotalImages:        int(imageCount),
		TaskPercent:        taskPercent,
		TimeElapsedPercent: timePercent,
		DisplayedPercent:   displayed,
		Status:             status,
	}, nil
}

// timeElapsedPercent measures how far the project is through its calendar
// window, clamped to [0, 100]. The window runs from start_date (falling
// back to the record's creation) to the estimated completion date, or a
// default multi-year horizon when none is set.
func (s *ProjectStatsService) timeElapsedPercent(project *model.Project) float64 {
	start := project.CreatedAt
	if project.StartDate != nil {
		start = *project.StartDate
	}

	end := start.AddDate(defaultHorizonYears, 0, 0)
	if project.EstimatedCompletionDate != nil {
		end = *project.EstimatedCompletionDate
	}

	if !end.After(start) {
		return 100
	}

	elapsed := s.now().Sub(start)
	window := end.Sub(start)
	percent := float64(elapsed) / float64(window) * 100

	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
