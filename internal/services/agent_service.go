package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/dtos"
	"github.com/justsurfingit/jobs-tracker/internal/models"
)

// ProfileExtractor turns CV text into a free-text summary. LLMService implements it.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, cvText string) (string, error)
}

// JobAgent is the two calls a Conversation drives.
type JobAgent interface {
	FindJob(ctx context.Context, userID string) (*dtos.AgentJob, error)
	Apply(ctx context.Context, userID string, job *dtos.AgentJob) (*models.Job, error)
}

type AgentService struct {
	Blobs BlobStore
	LLM   ProfileExtractor
	Jobs  *JobService
	now   func() time.Time
}

func NewAgentService(blobs BlobStore, llm ProfileExtractor, jobs *JobService) *AgentService {
	return &AgentService{Blobs: blobs, LLM: llm, Jobs: jobs, now: time.Now}
}

// FindJob reads the user's CV and asks the model to summarise it.
//
// The returned listing is a placeholder: there is no job search behind it and
// every caller gets the same Frontend Developer role, with the model output
// attached as the match reason.
func (s *AgentService) FindJob(ctx context.Context, userID string) (*dtos.AgentJob, error) {
	objects, err := s.Blobs.List(ctx, userID+"/", "cv")
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, ErrNoCV
	}

	cv, err := s.Blobs.Download(ctx, objects[0].Key)
	if err != nil {
		return nil, fmt.Errorf("Could not download CV: %w", err)
	}

	extracted, err := s.LLM.ExtractProfile(ctx, string(cv))
	if err != nil {
		return nil, err
	}
	return placeholderMatch(extracted), nil
}

func placeholderMatch(reason string) *dtos.AgentJob {
	return &dtos.AgentJob{
		Title:       "Frontend Developer",
		Company:     "Tech Innovators",
		Location:    "Remote",
		Link:        "https://example.com/job/frontend-developer",
		Description: "Work with React, Next.js, and TypeScript to build modern web apps.",
		MatchReason: reason,
	}
}

// Apply records the proposed listing as an applied job dated today.
func (s *AgentService) Apply(ctx context.Context, userID string, job *dtos.AgentJob) (*models.Job, error) {
	if job == nil {
		return nil, fmt.Errorf("%w: No job provided", ErrValidation)
	}
	return s.Jobs.CreateJob(ctx, userID, &dtos.JobRequest{
		Position:        job.Title,
		Company:         job.Company,
		City:            job.Location,
		ApplicationDate: s.now().Format("2006-01-02"),
		Status:          string(models.StatusApplied),
		Description:     job.Description,
		JobLink:         job.Link,
	})
}

type AgentState int

const (
	StateIdle AgentState = iota
	StateSearching
	StateAwaitingConfirmation
	StateApplying
)

func (s AgentState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateApplying:
		return "applying"
	}
	return fmt.Sprintf("AgentState(%d)", int(s))
}

// Conversation walks Idle -> Searching -> AwaitingConfirmation -> Applying -> Idle.
// Any failure drops back to Idle. Not safe for concurrent use.
type Conversation struct {
	agent     JobAgent
	userID    string
	state     AgentState
	candidate *dtos.AgentJob
}

func NewConversation(agent JobAgent, userID string) *Conversation {
	return &Conversation{agent: agent, userID: userID, state: StateIdle}
}

func (c *Conversation) State() AgentState { return c.state }

func (c *Conversation) Candidate() *dtos.AgentJob { return c.candidate }

func (c *Conversation) Find(ctx context.Context) (*dtos.AgentJob, error) {
	if c.state != StateIdle {
		return nil, fmt.Errorf("find while %s: %w", c.state, ErrInvalidTransition)
	}
	c.state = StateSearching
	job, err := c.agent.FindJob(ctx, c.userID)
	if err != nil {
		c.state = StateIdle
		return nil, err
	}
	c.candidate = job
	c.state = StateAwaitingConfirmation
	return job, nil
}

// Reply answers the pending proposal. A "no" discards it and returns a nil job.
func (c *Conversation) Reply(ctx context.Context, yes bool) (*models.Job, error) {
	if c.state != StateAwaitingConfirmation {
		return nil, fmt.Errorf("reply while %s: %w", c.state, ErrInvalidTransition)
	}
	candidate := c.candidate
	c.candidate = nil
	if !yes {
		c.state = StateIdle
		return nil, nil
	}

	c.state = StateApplying
	job, err := c.agent.Apply(ctx, c.userID, candidate)
	c.state = StateIdle
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ParseReply understands yes/y and no/n, case-insensitively.
func ParseReply(s string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	}
	return false, false
}
