package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studioforma/atelier/internal/adapter/repository"
	domainRepo "github.com/studioforma/atelier/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Task         domainRepo.TaskRepository
	Clearance    domainRepo.ClearanceRepository
	Project      domainRepo.ProjectRepository
	Client       domainRepo.ClientRepository
	Notification domainRepo.NotificationRepository
	Member       domainRepo.MemberRepository
	Document     domainRepo.DocumentRepository
	ProjectImage domainRepo.ProjectImageRepository
	Meeting      domainRepo.MeetingRepository
	Invoice      domainRepo.InvoiceRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Task:         repository.NewTaskRepository(db, logger),
		Clearance:    repository.NewClearanceRepository(db, logger),
		Project:      repository.NewProjectRepository(db, logger),
		Client:       repository.NewClientRepository(db, logger),
		Notification: repository.NewNotificationRepository(db, logger),
		Member:       repository.NewMemberRepository(db, logger),
		Document:     repository.NewDocumentRepository(db, logger),
		ProjectImage: repository.NewProjectImageRepository(db, logger),
		Meeting:      repository.NewMeetingRepository(db, logger),
		Invoice:      repository.NewInvoiceRepository(db, logger),
	}
}
