package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/dtos"
	"github.com/justsurfingit/jobs-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	got string
	out string
	err error
}

func (f *fakeExtractor) ExtractProfile(_ context.Context, cvText string) (string, error) {
	f.got = cvText
	return f.out, f.err
}

func newTestAgent(t *testing.T) (*AgentService, *memoryBlobs, *fakeExtractor) {
	t.Helper()
	blobs := newMemoryBlobs()
	llm := &fakeExtractor{out: "Strong React and TypeScript background"}
	agent := NewAgentService(blobs, llm, newTestJobService(t))
	agent.now = func() time.Time { return time.Date(2024, 6, 30, 9, 0, 0, 0, time.UTC) }
	return agent, blobs, llm
}

func TestFindJobWithoutCV(t *testing.T) {
	agent, blobs, llm := newTestAgent(t)
	ctx := context.Background()
	require.NoError(t, blobs.Upload(ctx, DocumentKey(alice, KindCoverLetter, "letter.pdf"), []byte("cl"), "", true))

	_, err := agent.FindJob(ctx, alice)
	assert.True(t, errors.Is(err, ErrNoCV))
	assert.Equal(t, "No CV found", err.Error())
	assert.Empty(t, llm.got)
}

func TestFindJobReturnsPlaceholder(t *testing.T) {
	agent, blobs, llm := newTestAgent(t)
	ctx := context.Background()
	require.NoError(t, blobs.Upload(ctx, DocumentKey(alice, KindCV, "resume.txt"), []byte("Jane, React dev"), "text/plain", true))

	job, err := agent.FindJob(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Jane, React dev", llm.got)
	assert.Equal(t, "Frontend Developer", job.Title)
	assert.Equal(t, "Tech Innovators", job.Company)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, "https://example.com/job/frontend-developer", job.Link)
	assert.Equal(t, "Strong React and TypeScript background", job.MatchReason)
}

func TestFindJobOnlyReadsOwnCV(t *testing.T) {
	agent, blobs, _ := newTestAgent(t)
	ctx := context.Background()
	require.NoError(t, blobs.Upload(ctx, DocumentKey(bob, KindCV, "resume.pdf"), []byte("bob"), "", true))

	_, err := agent.FindJob(ctx, alice)
	assert.True(t, errors.Is(err, ErrNoCV))
}

func TestFindJobPropagatesLLMError(t *testing.T) {
	agent, blobs, llm := newTestAgent(t)
	ctx := context.Background()
	require.NoError(t, blobs.Upload(ctx, DocumentKey(alice, KindCV, "resume.pdf"), []byte("cv"), "", true))
	llm.err = errors.New("quota exceeded")

	_, err := agent.FindJob(ctx, alice)
	assert.EqualError(t, err, "quota exceeded")
}

func TestApplyCreatesJob(t *testing.T) {
	agent, _, _ := newTestAgent(t)
	ctx := context.Background()

	created, err := agent.Apply(ctx, alice, placeholderMatch("fit"))
	require.NoError(t, err)
	assert.Equal(t, "Frontend Developer", created.Position)
	assert.Equal(t, "Tech Innovators", created.Company)
	assert.Equal(t, "Remote", created.City)
	assert.Equal(t, "2024-06-30", created.ApplicationDate)
	assert.Equal(t, models.StatusApplied, created.Status)
	assert.Equal(t, "https://example.com/job/frontend-developer", created.JobLink)

	list, err := agent.Jobs.ListJobs(ctx, alice, dtos.ListJobsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
}

func TestApplyWithoutJob(t *testing.T) {
	agent, _, _ := newTestAgent(t)
	_, err := agent.Apply(context.Background(), alice, nil)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "No job provided")
}

// scriptedAgent records calls and returns canned results.
type scriptedAgent struct {
	findErr  error
	applied  []*dtos.AgentJob
	applyErr error
}

func (s *scriptedAgent) FindJob(context.Context, string) (*dtos.AgentJob, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return placeholderMatch("because"), nil
}

func (s *scriptedAgent) Apply(_ context.Context, userID string, job *dtos.AgentJob) (*models.Job, error) {
	s.applied = append(s.applied, job)
	if s.applyErr != nil {
		return nil, s.applyErr
	}
	return &models.Job{ID: 7, UserID: userID, Position: job.Title}, nil
}

func TestConversationAccept(t *testing.T) {
	agent := &scriptedAgent{}
	conv := NewConversation(agent, alice)
	ctx := context.Background()
	assert.Equal(t, StateIdle, conv.State())

	proposed, err := conv.Find(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingConfirmation, conv.State())
	assert.Same(t, proposed, conv.Candidate())

	_, err = conv.Find(ctx)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	created, err := conv.Reply(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 7, created.ID)
	assert.Equal(t, StateIdle, conv.State())
	assert.Nil(t, conv.Candidate())
	require.Len(t, agent.applied, 1)
	assert.Same(t, proposed, agent.applied[0])
}

func TestConversationDecline(t *testing.T) {
	agent := &scriptedAgent{}
	conv := NewConversation(agent, alice)
	ctx := context.Background()

	_, err := conv.Find(ctx)
	require.NoError(t, err)
	created, err := conv.Reply(ctx, false)
	require.NoError(t, err)
	assert.Nil(t, created)
	assert.Equal(t, StateIdle, conv.State())
	assert.Empty(t, agent.applied)

	_, err = conv.Reply(ctx, true)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestConversationFailuresReturnToIdle(t *testing.T) {
	ctx := context.Background()

	conv := NewConversation(&scriptedAgent{findErr: ErrNoCV}, alice)
	_, err := conv.Find(ctx)
	assert.True(t, errors.Is(err, ErrNoCV))
	assert.Equal(t, StateIdle, conv.State())

	conv = NewConversation(&scriptedAgent{applyErr: errors.New("db down")}, alice)
	_, err = conv.Find(ctx)
	require.NoError(t, err)
	_, err = conv.Reply(ctx, true)
	assert.EqualError(t, err, "db down")
	assert.Equal(t, StateIdle, conv.State())
}

func TestParseReply(t *testing.T) {
	for _, in := range []string{"yes", "Y", " YES "} {
		yes, ok := ParseReply(in)
		assert.True(t, ok, in)
		assert.True(t, yes, in)
	}
	for _, in := range []string{"no", "N"} {
		yes, ok := ParseReply(in)
		assert.True(t, ok, in)
		assert.False(t, yes, in)
	}
	_, ok := ParseReply("maybe")
	assert.False(t, ok)
	assert.Equal(t, "awaiting_confirmation", StateAwaitingConfirmation.String())
}
