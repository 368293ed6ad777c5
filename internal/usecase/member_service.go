package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/domain/role"
)

// MemberService maintains the staff directory. Identity lives with the
// provider that signs the tokens; rows here mirror it so notifications and
// assignment pickers have emails and names to work with.
type MemberService struct {
	memberRepo repository.MemberRepository
	logger     *zap.Logger
}

// NewMemberService creates a new member service.
func NewMemberService(memberRepo repository.MemberRepository, logger *zap.Logger) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// Directory returns every staff member. All roles may browse it.
func (s *MemberService) Directory(ctx context.Context) ([]*model.Member, error) {
	return s.memberRepo.List(ctx)
}

// SyncProfile upserts the caller's directory entry from their token
// identity. Called by the frontend after login so the directory tracks the
// identity provider without a separate sync job.
func (s *MemberService) SyncProfile(ctx context.Context, actor role.Actor, fullName string) (*model.Member, error) {
	if actor.Email == "" {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "token carries no email address")
	}

	member := &model.Member{
		ID:       actor.ID,
		Email:    actor.Email,
		FullName: fullName,
		Role:     actor.Role,
	}

	if err := s.memberRepo.Upsert(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("Member profile synced",
		zap.String("member_id", member.ID.String()),
		zap.String("role", string(member.Role)))

	return member, nil
}

// GetMember returns one directory entry.
func (s *MemberService) GetMember(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}
