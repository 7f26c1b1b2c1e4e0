package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/pkg/websocket"
)

type published struct {
	recipient, msgType, id string
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
}

func (p *recordingPublisher) Publish(recipient, msgType, id string, _ interface{}) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{recipient, msgType, id})
	return true
}

func TestNotificationsPublishedToRecipient(t *testing.T) {
	f := newFixture(t)
	pub := &recordingPublisher{}
	f.svc.NotificationService.publisher = pub

	_, err := f.svc.GradeService.RecordGrade(f.ctx, f.professor.ID, f.gradeRequest(f.course, 8))
	require.NoError(t, err)
	_, err = f.svc.ExamRegistrationService.Create(f.ctx, f.student.ID, f.registrationRequest(models.SemesterSummer))
	require.NoError(t, err)

	require.Len(t, pub.sent, 2)
	assert.Equal(t, f.student.ID.String(), pub.sent[0].recipient)
	assert.Equal(t, websocket.TypeNotification, pub.sent[0].msgType)
	assert.Equal(t, f.professor.ID.String(), pub.sent[1].recipient)
}

func TestMarkReadOwnership(t *testing.T) {
	f := newFixture(t)
	notifications := f.svc.NotificationService

	_, err := f.svc.GradeService.RecordGrade(f.ctx, f.professor.ID, f.gradeRequest(f.course, 8))
	require.NoError(t, err)

	unread, err := notifications.ListUnread(f.ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	id := unread[0].ID

	_, err = notifications.MarkReadAs(f.ctx, id, f.professor.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, notifications.MarkReadFor(f.ctx, "not-an-id", f.student.ID.String()), apperrors.ErrValidation)

	require.NoError(t, notifications.MarkReadFor(f.ctx, id.String(), f.student.ID.String()))
	unread, err = notifications.ListUnread(f.ctx, f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := notifications.ListForRecipient(f.ctx, f.student.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsRead)
	assert.NotNil(t, all[0].ReadAt)
}

func TestRecipientOf(t *testing.T) {
	f := newFixture(t)
	notifications := f.svc.NotificationService

	id, err := notifications.RecipientOf(f.ctx, f.studentUser.ID, models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, id)

	recipient, err := notifications.RecipientFor(f.ctx, f.profUser.ID.String(), string(models.RoleProfessor))
	require.NoError(t, err)
	assert.Equal(t, f.professor.ID.String(), recipient)

	_, err = notifications.RecipientOf(f.ctx, f.profUser.ID, models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = notifications.RecipientOf(f.ctx, f.profUser.ID, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
